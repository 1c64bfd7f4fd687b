package store

type Position struct {
	X float64
	Y float64
}

type BaseElement struct {
	BaseID int64
	X      float64
	Y      float64
	Asset  string
}
