package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractProductType(t *testing.T) {
	assert.Equal(t, "шорты", Extract("Шорты JL126-12/05-25").ProductType)
	assert.Equal(t, "куртка", Extract("Куртка, зимняя").ProductType)
	assert.Equal(t, "", Extract("   ").ProductType)
	assert.Equal(t, "", Extract("").ProductType)
}

func TestExtractProductCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Шорты JL126-12/05-25, цвет синий, 48", "JL126-12/05-25"},
		{"Куртка AB123-45/67", "AB123-45/67"},
		{"Костюм 12-34-56 серый", "12-34-56"},
		{"Куртка ABC123 черная L", "ABC123"},
		{"Арт 123abc серый", "123ABC"},
		{"Платье нарядное вечернее", ""}, // кириллица без латиницы/цифр — артикула нет
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Extract(c.in).ProductCode, "input %q", c.in)
	}
}

// Порядок правил — контракт: строгая форма забирает цифровые группы раньше,
// чем их проглотит свободная.
func TestExtractCodeRulePriority(t *testing.T) {
	// без приоритета "jl126" взяла бы форма letters-digits
	assert.Equal(t, "JL126-12/05-25", Extract("jl126-12/05-25").ProductCode)
	// чисто цифровые группы достаются своей форме, а не digits-letters
	assert.Equal(t, "12-34", Extract("пояс 12-34 текстиль").ProductCode)
}

func TestExtractColor(t *testing.T) {
	// слово после "цвет"
	assert.Equal(t, "синий", Extract("Куртка цвет синий").Color)
	// первая сработавшая позиция — запятая: захватывается слово "цвет"
	assert.Equal(t, "цвет", Extract("Шорты JL126-12/05-25, цвет синий, 48").Color)
	// запасная эвристика: слово перед двузначным числом
	assert.Equal(t, "синий", Extract("Шорты JL126-12/05-25 синий 48").Color)
	assert.Equal(t, "", Extract("Шорты JL126").Color)
}

// Размер определяется последней попыткой прохода по правилам (см. sizeRules):
// ШxД может совпасть, но итог решают правило ШxДxВ и общий запасной вариант.
func TestExtractSizeOverwriteBehavior(t *testing.T) {
	// ШxДxВ — последнее правило, его совпадение и остаётся
	assert.Equal(t, "20", Extract("Коробка 20х30х40").Size)
	// ШxД совпадает на 50, но его затирает неудачная последняя итерация:
	// правило ШxДxВ не совпало, а в запасном варианте числа приклеены к "х"
	assert.Equal(t, "", Extract("Полотенце 50х90").Size)
	// запасной вариант: последнее отдельно стоящее двузначное число
	assert.Equal(t, "48", Extract("Шорты JL126-12/05-25, цвет синий, 48").Size)
	assert.Equal(t, "48", Extract("Шорты JL126-12/05-25 синий 48").Size)
	// двузначных чисел нет — размер отсутствует
	assert.Equal(t, "", Extract("Платье нарядное вечернее").Size)
	assert.Equal(t, "", Extract("Куртка ABC123 черная L").Size)
}

func TestExtractDeterministic(t *testing.T) {
	in := "Шорты JL126-12/05-25, цвет синий, 48"
	first := Extract(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Extract(in))
	}
}
