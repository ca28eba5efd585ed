package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSetRatioIdenticalSets(t *testing.T) {
	// порядок и дубликаты токенов не важны
	assert.Equal(t, 100.0, TokenSetRatio("куртка синяя зимняя", "зимняя куртка синяя"))
	assert.Equal(t, 100.0, TokenSetRatio("куртка куртка синяя", "синяя куртка"))
	assert.Equal(t, 100.0, TokenSetRatio("", ""))
}

func TestTokenSetRatioEmpty(t *testing.T) {
	assert.Equal(t, 0.0, TokenSetRatio("куртка", ""))
	assert.Equal(t, 0.0, TokenSetRatio("", "куртка"))
}

func TestTokenSetRatioSubset(t *testing.T) {
	// подмножество токенов даёт 100: пересечение против пересечения
	assert.Equal(t, 100.0, TokenSetRatio("куртка abc123", "куртка abc123 черн l"))
}

func TestTokenSetRatioDissimilar(t *testing.T) {
	s := TokenSetRatio("шорты пляжные", "носки шерстяные")
	assert.Less(t, s, 90.0)
	assert.GreaterOrEqual(t, s, 0.0)
}

func TestTokenSetRatioSymmetric(t *testing.T) {
	a := "куртка norb12 зимняя утепленная"
	b := "куртка nor12 зимняя утепленная"
	assert.Equal(t, TokenSetRatio(a, b), TokenSetRatio(b, a))
	assert.GreaterOrEqual(t, TokenSetRatio(a, b), 90.0)
	assert.Less(t, TokenSetRatio(a, b), 100.0)
}

func TestDamerauLevenshtein(t *testing.T) {
	assert.Equal(t, 0, damerauLevenshtein("abc", "abc"))
	assert.Equal(t, 1, damerauLevenshtein("abc", "acb")) // транспозиция
	assert.Equal(t, 1, damerauLevenshtein("abc", "abcd"))
	assert.Equal(t, 3, damerauLevenshtein("", "abc"))
}
