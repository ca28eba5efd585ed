package service

import (
	"sort"
	"strings"
)

// Scorer — стратегия похожести двух нормализованных строк, шкала 0..100.
// Подменяется в тестах и при необходимости — на другую метрику; порог
// принятия задаёт вызывающая сторона.
type Scorer func(a, b string) float64

// TokenSetRatio — похожесть множеств токенов: порядок слов и дубликаты
// не учитываются, идентичные множества дают ровно 100.
// Строится по схеме token_set_ratio: пересечение токенов против
// пересечение+остаток каждой из сторон, берётся максимум.
func TokenSetRatio(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 100
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var inter, diffA, diffB []string
	for t := range ta {
		if _, ok := tb[t]; ok {
			inter = append(inter, t)
		} else {
			diffA = append(diffA, t)
		}
	}
	for t := range tb {
		if _, ok := ta[t]; !ok {
			diffB = append(diffB, t)
		}
	}
	sort.Strings(inter)
	sort.Strings(diffA)
	sort.Strings(diffB)

	base := strings.Join(inter, " ")
	sa := strings.TrimSpace(base + " " + strings.Join(diffA, " "))
	sb := strings.TrimSpace(base + " " + strings.Join(diffB, " "))

	best := ratio(base, sa)
	if r := ratio(base, sb); r > best {
		best = r
	}
	if r := ratio(sa, sb); r > best {
		best = r
	}
	return best
}

func tokenSet(s string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		m[t] = struct{}{}
	}
	return m
}

// ratio — нормированная похожесть строк в 0..100 на базе расстояния
// Дамерау-Левенштейна.
func ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	d := damerauLevenshtein(a, b)
	m := len([]rune(a))
	if mb := len([]rune(b)); mb > m {
		m = mb
	}
	return 100 * (1 - float64(d)/float64(m))
}

func damerauLevenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	al, bl := len(ra), len(rb)

	dp := make([][]int, al+1)
	for i := 0; i <= al; i++ {
		dp[i] = make([]int, bl+1)
	}
	for i := 0; i <= al; i++ {
		dp[i][0] = i
	}
	for j := 0; j <= bl; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= al; i++ {
		for j := 1; j <= bl; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			// вставка / удаление / замена
			dp[i][j] = min3(dp[i-1][j]+1, dp[i][j-1]+1, dp[i-1][j-1]+cost)

			// транспозиция соседних символов
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if v := dp[i-2][j-2] + 1; v < dp[i][j] {
					dp[i][j] = v
				}
			}
		}
	}
	return dp[al][bl]
}

func min3(a, b, c int) int { return min(min(a, b), c) }
