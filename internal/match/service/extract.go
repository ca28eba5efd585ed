package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"match-service/internal/match/model"
)

// codeRule — одна форма артикула. Порядок в списке — контракт:
// свободные формы (abc123, 123abc) перехватили бы цифровые группы,
// на которые претендуют строгие формы, поэтому список проверяется
// строго сверху вниз до первого попадания.
type codeRule struct {
	name string
	rx   *regexp.Regexp
}

var codeRules = []codeRule{
	{"letters+3groups", regexp.MustCompile(`\b[a-z]{2,4}\d{2,4}(?:[-/]\d{2,5}){1,3}\b`)}, // jl126-12/05-25
	{"letters+2groups", regexp.MustCompile(`\b[a-z]{2,4}\d{2,4}(?:[-/]\d{1,5}){0,2}\b`)}, // ab123-45/67
	{"numeric-groups", regexp.MustCompile(`\b\d{2,5}(?:[-/]\d{2,5}){1,2}\b`)},            // 12-34-56
	{"letters-digits", regexp.MustCompile(`\b[a-z]+\d+[a-z]*\b`)},                        // abc123
	{"digits-letters", regexp.MustCompile(`\b\d+[a-z]+\d*\b`)},                           // 123abc
}

// Цвет: слово после "цвет"/"колор" или после запятой.
var rxColorKeyword = regexp.MustCompile(`(?:цвет|колор|,)\s*([a-zа-яё]+)`)

// Резервная эвристика цвета: короткое слово прямо перед двузначным числом
// («синий48», «синий 48») — типичная склейка «имя+размер».
var rxLetterRun = regexp.MustCompile(`[a-zа-яё]+`)

// sizeRules — девять форм размера. Контракт намеренно странный: каждая
// форма пробуется по очереди, но результат каждой итерации затирает
// предыдущий, т.е. поле определяется ПОСЛЕДНЕЙ попыткой (совпала она или
// нет), а не первой удачной. Это унаследованное поведение; менять его —
// значит молча менять извлечённые размеры на живых данных.
var sizeRules = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,3}(?:,\d{1,2})?)(?:\s*см)?$`),            // обычный
	regexp.MustCompile(`^(\d{2,3})[-–](\d{2,3})(?:\s*см)?$`),            // диапазон
	regexp.MustCompile(`^(XS|S|M|L|XL|XXL|XXXL|XXXXL|XXXXXL|XXXXXXL)$`), // буквенный
	regexp.MustCompile(`^(\d{2}(?:,\d{1,2})?)$`),                        // обувной
	regexp.MustCompile(`^(\d+)\s*/\s*(\d{2})$`),                         // сдвоенный
	regexp.MustCompile(`^(\d{2,3})\s*(?:EU|евро)$`),                     // евро
	regexp.MustCompile(`^(one\s*size|универсальный|без\s*размера)$`),    // безразмерный
	regexp.MustCompile(`(\d{2,3})[хx×](\d{2,3})`),                       // ШxД
	regexp.MustCompile(`(\d{2,3})[хx×](\d{2,3})[хx×](\d{2,3})`),         // ШxДxВ
}

var rxTwoDigits = regexp.MustCompile(`\d{2}`)

// Extract выделяет тип, артикул, размер и цвет из сырого названия.
// Работает по исходному (не нормализованному) тексту в нижнем регистре.
// Тотальная функция: несовпадение правила — это отсутствие поля, не ошибка.
func Extract(raw string) model.Attributes {
	text := strings.ToLower(raw)
	var a model.Attributes

	// 1. Тип продукта — первый токен без запятых.
	if f := strings.Fields(text); len(f) > 0 {
		a.ProductType = strings.ReplaceAll(f[0], ",", "")
	}

	// 2. Артикул — первое правило в списке, нашедшее совпадение.
	for _, rule := range codeRules {
		if m := rule.rx.FindString(text); m != "" {
			a.ProductCode = strings.ToUpper(collapseAll(m))
			break
		}
	}

	// 3. Цвет.
	if m := rxColorKeyword.FindStringSubmatch(text); m != nil {
		a.Color = strings.TrimSpace(m[1])
	} else {
		a.Color = colorBeforeTwoDigit(text)
	}

	// 4. Размер — см. комментарий у sizeRules: затирающий проход по всем
	// правилам, у каждой неудачной попытки общий запасной вариант —
	// последнее «одинокое» двузначное число в строке.
	var m []string
	for _, rx := range sizeRules {
		m = rx.FindStringSubmatch(text)
		if m == nil {
			m = loneTwoDigit(text)
		}
	}
	if m != nil {
		a.Size = m[1]
	}

	return a
}

func collapseAll(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// python \w: буква любого алфавита, цифра, подчёркивание.
func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

// colorBeforeTwoDigit эмулирует `(\b[a-zа-яё]+)(?=\s*\d{2}\b)`:
// RE2 не поддерживает lookahead, поэтому хвостовой контекст проверяется явно.
func colorBeforeTwoDigit(s string) string {
	for _, loc := range rxLetterRun.FindAllStringIndex(s, -1) {
		if loc[0] > 0 {
			if r, _ := utf8.DecodeLastRuneInString(s[:loc[0]]); isWord(r) {
				continue
			}
		}
		if followedByLoneTwoDigit(s[loc[1]:]) {
			return s[loc[0]:loc[1]]
		}
	}
	return ""
}

// `\s*\d{2}\b` сразу после кандидата.
func followedByLoneTwoDigit(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n\v\f")
	if len(rest) < 2 || !isASCIIDigit(rest[0]) || !isASCIIDigit(rest[1]) {
		return false
	}
	if len(rest) == 2 {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest[2:])
	return !isWord(r)
}

// loneTwoDigit эмулирует `\b(\d{2})\b(?!.*\d{2})`: первое отдельно стоящее
// двузначное число, после которого в строке больше нет пары подряд идущих цифр.
func loneTwoDigit(s string) []string {
	rs := []rune(s)
	for i := 0; i+1 < len(rs); i++ {
		if !unicode.IsDigit(rs[i]) || !unicode.IsDigit(rs[i+1]) {
			continue
		}
		if i > 0 && isWord(rs[i-1]) {
			continue
		}
		if i+2 < len(rs) && isWord(rs[i+2]) {
			continue
		}
		if !rxTwoDigits.MatchString(string(rs[i+2:])) {
			g := string(rs[i : i+2])
			return []string{g, g}
		}
	}
	return nil
}
