package domain

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

var Sides = []Side{SideBuy, SideSell}

func (s Side) Valid() bool { return s == SideBuy || s == SideSell }
