// Package recommend содержит векторную математику подсистемы рекомендаций:
// центроид множества эмбеддингов и ранжирование кандидатов по L2-расстоянию.
// Вычисления выполняются в памяти над векторами, полученными из хранилища,
// чтобы метрика оставалась переносимой и проверяемой независимо от БД.
package recommend

import (
	"math"
	"sort"

	"github.com/libraria-tech/go-backend/pkg/e"
)

// Ranked — один кандидат результата ранжирования.
type Ranked struct {
	BookID   int64
	Distance float64
}

// Centroid возвращает поэлементное среднее набора векторов одинаковой размерности.
// Пустой вход и смешанные размерности — ошибка вызывающей стороны.
func Centroid(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, e.ErrEmptyCentroidInput
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, e.ErrEmptyVector
	}

	sums := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, e.ErrVectorDimension
		}
		for i, c := range v {
			sums[i] += float64(c)
		}
	}

	centroid := make([]float32, dim)
	n := float64(len(vectors))
	for i, s := range sums {
		centroid[i] = float32(s / n)
	}

	return centroid, nil
}

// L2Distance возвращает евклидово расстояние между двумя векторами одной размерности.
func L2Distance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, e.ErrVectorDimension
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}

	return math.Sqrt(sum), nil
}

// RankNearest ранжирует кандидатов по возрастанию L2-расстояния до query
// и возвращает не более k ближайших. Кандидаты с несовпадающей размерностью
// отбрасываются. При равных расстояниях порядок детерминирован: меньший ID раньше.
func RankNearest(query []float32, candidates map[int64][]float32, k int) []Ranked {
	if k <= 0 || len(candidates) == 0 {
		return []Ranked{}
	}

	ranked := make([]Ranked, 0, len(candidates))
	for id, vector := range candidates {
		distance, err := L2Distance(query, vector)
		if err != nil {
			continue
		}
		ranked = append(ranked, Ranked{BookID: id, Distance: distance})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Distance != ranked[j].Distance {
			return ranked[i].Distance < ranked[j].Distance
		}
		return ranked[i].BookID < ranked[j].BookID
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	return ranked
}
