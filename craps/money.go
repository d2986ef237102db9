package craps

import "fmt"

// Money is an amount in whole dollars.
type Money int64

func (m Money) String() string {
	return fmt.Sprintf("$%d", int64(m))
}

// Ratio is an exact payout ratio, Num to Den.
type Ratio struct {
	Num int64
	Den int64
}

// Even money.
var Even = Ratio{1, 1}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.Num, r.Den)
}

// Winnings returns stake*Num/Den rounded half to even. The stake itself is
// not included.
func (r Ratio) Winnings(stake Money) Money {
	if r.Den <= 0 || stake <= 0 {
		return 0
	}
	n := int64(stake) * r.Num
	q, rem := n/r.Den, n%r.Den
	switch {
	case 2*rem > r.Den:
		q++
	case 2*rem == r.Den && q%2 == 1:
		q++
	}
	return Money(q)
}
