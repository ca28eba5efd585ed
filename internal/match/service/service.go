package service

import (
	"fmt"
	"strings"

	"match-service/internal/match/model"
)

// DefaultThreshold — порог принятия нечеткого совпадения (шкала 0..100).
const DefaultThreshold = 90

// Matcher — трёхъярусный каскад сопоставления строк заказа с каталогом
// поставщика. Без состояния между прогонами: все кэши живут внутри Match,
// параллельные прогоны независимы.
type Matcher struct {
	score     Scorer
	threshold float64
}

func NewMatcher(score Scorer, threshold float64) *Matcher {
	if score == nil {
		score = TokenSetRatio
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{score: score, threshold: threshold}
}

// Match — основной каскад: ровно один результат на строку заказа, в порядке
// входа. Ярус, назначивший результат, финален — дальше строка не рассматривается.
func (m *Matcher) Match(orders []model.OrderLine, suppliers []model.SupplierEntry) (model.Result, error) {
	if err := validate(orders, suppliers); err != nil {
		return model.Result{}, err
	}

	// Нормализация и извлечение атрибутов — по одному разу на строку.
	ordRecs := make([]model.NormalizedRecord, len(orders))
	for i, o := range orders {
		ordRecs[i] = model.NormalizedRecord{Norm: Normalize(o.RawName), Attrs: Extract(o.RawName)}
	}
	supRecs := make([]model.NormalizedRecord, len(suppliers))
	for i, s := range suppliers {
		supRecs[i] = model.NormalizedRecord{Norm: Normalize(s.Nomenclature), Attrs: Extract(s.Nomenclature)}
	}

	idx := buildSupplierIndex(supRecs)

	res := model.Result{
		Rows:      make([]model.MatchResult, len(orders)),
		Orders:    len(orders),
		Suppliers: len(suppliers),
	}

	for i, o := range orders {
		attrs := ordRecs[i].Attrs
		row := model.MatchResult{
			OrderID:      o.ID,
			OrderRawName: o.RawName,
			Code:         attrs.ProductCode,
			Size:         attrs.Size,
			Color:        attrs.Color,
			Method:       model.MethodUnmatched,
		}

		// Ярус 1: точное совпадение пары (артикул, размер).
		// Несколько кандидатов не ранжируются: берём первого по входу.
		if list := idx.byKey[pairKey(attrs.ProductCode, attrs.Size)]; len(list) > 0 {
			s := suppliers[list[0]]
			row.Method = model.MethodExact
			row.Nomenclature = s.Nomenclature
			row.ExternalID = s.ExternalID
			row.SecondaryID = s.SecondaryID
			res.Rows[i] = row
			res.Exact++
			continue
		}

		// Ярус 2: сквозной. Join только по артикулу отключён — строки с
		// артикулом, не нашедшие пару, уходят в ярус 3 как есть.

		// Ярус 3: нечеткое сопоставление по нормализованному тексту.
		// Пул ограничен типом продукта, если он извлечён из заказа.
		bestScore := -1.0
		bestJ := -1
		for _, j := range idx.candidates(attrs.ProductType) {
			if s := m.score(ordRecs[i].Norm, supRecs[j].Norm); s > bestScore {
				bestScore = s
				bestJ = j
			}
		}
		if bestJ >= 0 && bestScore >= m.threshold {
			s := suppliers[bestJ]
			row.Method = model.MethodFuzzy
			row.Nomenclature = s.Nomenclature
			row.ExternalID = s.ExternalID
			row.SecondaryID = s.SecondaryID
			row.Score = &bestScore
			res.Fuzzy++
		} else {
			res.Unmatched++
		}
		res.Rows[i] = row
	}

	return res, nil
}

// validate отсеивает структурно битые входы до старта каскада:
// каскад либо получает пригодные данные, либо не стартует вовсе.
func validate(orders []model.OrderLine, suppliers []model.SupplierEntry) error {
	for i, o := range orders {
		if strings.TrimSpace(o.ID) == "" {
			return fmt.Errorf("order line %d: missing Код ТМЦ", i+1)
		}
	}
	for i, s := range suppliers {
		if strings.TrimSpace(s.Nomenclature) == "" {
			return fmt.Errorf("supplier entry %d: missing Номенклатура", i+1)
		}
	}
	return nil
}
