package desert

import "math/big"

// MaxN is the largest n accepted for lcm(1..n) by the command line. The
// resulting modulus is around 1.44*MaxN bits wide.
const MaxN = 1 << 20

// LCM returns lcm(1,2,...,n). For n <= 1 the result is 1.
func LCM(n int) *big.Int {
	acc := big.NewInt(1)
	var g, i big.Int
	for k := 2; k <= n; k++ {
		i.SetInt64(int64(k))
		g.GCD(nil, nil, acc, &i)
		if g.IsInt64() && g.Int64() == int64(k) {
			continue // k already divides acc
		}
		acc.Quo(acc, &g)
		acc.Mul(acc, &i)
	}
	return acc
}

// Divides reports whether every integer in [2,n] divides x.
func Divides(x *big.Int, n int) bool {
	var m, i big.Int
	for k := 2; k <= n; k++ {
		i.SetInt64(int64(k))
		if m.Mod(x, &i).Sign() != 0 {
			return false
		}
	}
	return true
}
