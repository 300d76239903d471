package utils

type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

// NewFromFloat converts a row of float64 connectivity into integer vertex
// indices, truncating toward zero
func NewFromFloat(IF []float64) (r Index) {
	r = make(Index, len(IF))
	for i, val := range IF {
		r[i] = int(val)
	}
	return
}
