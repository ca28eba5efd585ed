package service

import "match-service/internal/match/model"

// pairKey — составной ключ яруса 1. Отсутствующие атрибуты кодируются
// пустой строкой, поэтому пара «нет артикула + нет размера» совпадает с
// поставщиком, у которого их тоже нет: это обычный equality-join.
func pairKey(code, size string) string {
	return code + "\x1f" + size
}

// supplierIndex — индексы по каталогу поставщика для быстрого каскада.
// Списки хранят позиции во входном срезе, порядок входа сохраняется —
// на нём держится детерминированный выбор при нескольких кандидатах.
type supplierIndex struct {
	byKey  map[string][]int // (артикул, размер) -> позиции
	byType map[string][]int // тип продукта -> позиции
	all    []int
}

func buildSupplierIndex(recs []model.NormalizedRecord) *supplierIndex {
	idx := &supplierIndex{
		byKey:  make(map[string][]int, len(recs)),
		byType: make(map[string][]int),
		all:    make([]int, len(recs)),
	}
	for i, r := range recs {
		k := pairKey(r.Attrs.ProductCode, r.Attrs.Size)
		idx.byKey[k] = append(idx.byKey[k], i)
		if t := r.Attrs.ProductType; t != "" {
			idx.byType[t] = append(idx.byType[t], i)
		}
		idx.all[i] = i
	}
	return idx
}

// candidates — пул кандидатов для нечеткого яруса: при известном типе
// продукта — только поставщики того же типа (возможно, пусто), иначе весь каталог.
func (idx *supplierIndex) candidates(productType string) []int {
	if productType != "" {
		return idx.byType[productType]
	}
	return idx.all
}
