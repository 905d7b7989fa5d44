package face

import (
	"math"

	apperrors "employee-management-backend/lib/utils/app-errors"
)

type Result struct {
	Distance float64
	Matched  bool
}

// Distance евклидово расстояние между векторами лица одинаковой размерности
func Distance(known, candidate []float64) (float64, error) {
	if len(known) == 0 || len(candidate) == 0 {
		return 0, apperrors.Validation("пустой вектор лица")
	}
	if len(known) != len(candidate) {
		return 0, apperrors.Validation("размерность вектора лица не совпадает с профилем")
	}
	var sum float64
	for idx := range known {
		diff := known[idx] - candidate[idx]
		sum += diff * diff
	}
	return math.Sqrt(sum), nil
}

// Compare совпадение при расстоянии не больше threshold
func Compare(known, candidate []float64, threshold float64) (Result, error) {
	distance, err := Distance(known, candidate)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Distance: distance,
		Matched:  distance <= threshold,
	}, nil
}
