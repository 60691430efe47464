package limb

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toBig(x []uint64) *big.Int {
	z := new(big.Int)
	for i := len(x) - 1; i >= 0; i-- {
		z.Lsh(z, 64)
		z.Or(z, new(big.Int).SetUint64(x[i]))
	}
	return z
}

func randLimbs(rng *rand.Rand, n int) []uint64 {
	x := make([]uint64, n)
	for i := range x {
		x[i] = rng.Uint64()
	}
	return x
}

func modulusFor(n int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(64*n))
}

func TestAddSub(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 4, 8} {
		mod := modulusFor(n)
		for i := 0; i < 50; i++ {
			x, y := randLimbs(rng, n), randLimbs(rng, n)
			z := make([]uint64, n)

			carry := Add(z, x, y)
			sum := new(big.Int).Add(toBig(x), toBig(y))
			assert.Equal(t, sum.Cmp(mod) >= 0, carry == 1)
			assert.Equal(t, 0, new(big.Int).Mod(sum, mod).Cmp(toBig(z)))

			borrow := Sub(z, x, y)
			diff := new(big.Int).Sub(toBig(x), toBig(y))
			assert.Equal(t, diff.Sign() < 0, borrow == 1)
			assert.Equal(t, 0, new(big.Int).Mod(diff, mod).Cmp(toBig(z)))
		}
	}
}

func TestAddCarryWraps(t *testing.T) {
	x := []uint64{^uint64(0), ^uint64(0)}
	z := make([]uint64, 2)
	carry := AddWord(z, x, 1)
	assert.Equal(t, uint64(1), carry)
	assert.True(t, IsZero(z))

	borrow := SubWord(z, z, 1)
	assert.Equal(t, uint64(1), borrow)
	assert.Equal(t, x, z)
}

func TestMul(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, n := range []int{1, 3, 4} {
		for i := 0; i < 50; i++ {
			x, y := randLimbs(rng, n), randLimbs(rng, n)
			z := make([]uint64, 2*n)
			Mul(z, x, y)
			want := new(big.Int).Mul(toBig(x), toBig(y))
			require.Equal(t, 0, want.Cmp(toBig(z)))
		}
	}
}

func TestBitwise(t *testing.T) {
	x := []uint64{0xf0f0, 0xff00}
	y := []uint64{0x0ff0, 0x0f0f}
	z := make([]uint64, 2)

	And(z, x, y)
	assert.Equal(t, []uint64{0x00f0, 0x0f00}, z)
	Or(z, x, y)
	assert.Equal(t, []uint64{0xfff0, 0xff0f}, z)
	Xor(z, x, y)
	assert.Equal(t, []uint64{0xff00, 0xf00f}, z)
	Not(z, x)
	assert.Equal(t, []uint64{^uint64(0xf0f0), ^uint64(0xff00)}, z)
}

func TestShifts(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := 4
	mod := modulusFor(n)
	for _, s := range []uint{1, 7, 63, 64, 65, 128, 200, 255} {
		x := randLimbs(rng, n)
		z := make([]uint64, n)

		Shl(z, x, s)
		want := new(big.Int).Lsh(toBig(x), s)
		want.Mod(want, mod)
		assert.Equal(t, 0, want.Cmp(toBig(z)), "shl %d", s)

		Shr(z, x, s)
		want = new(big.Int).Rsh(toBig(x), s)
		assert.Equal(t, 0, want.Cmp(toBig(z)), "shr %d", s)
	}
}

func TestShiftSmallCarriesOut(t *testing.T) {
	z := make([]uint64, 2)
	out := ShlSmall(z, []uint64{1, 1 << 63}, 1)
	assert.Equal(t, uint64(1), out)
	assert.Equal(t, []uint64{2, 0}, z)

	out = ShrSmall(z, []uint64{3, 0}, 1)
	assert.Equal(t, uint64(1)<<63, out)
	assert.Equal(t, []uint64{1, 0}, z)
}

func TestZeroCounts(t *testing.T) {
	zero := make([]uint64, 4)
	assert.Equal(t, 256, LeadingZeros(zero))
	assert.Equal(t, 256, TrailingZeros(zero))
	assert.Equal(t, 0, BitLen(zero))

	x := []uint64{0, 8, 0, 0}
	assert.Equal(t, 64+3, TrailingZeros(x))
	assert.Equal(t, 128+60, LeadingZeros(x))
	assert.Equal(t, 68, BitLen(x))
	assert.Equal(t, uint(1), Bit(x, 67))
	assert.Equal(t, uint(0), Bit(x, 66))
	assert.Equal(t, uint(0), Bit(x, 1000))
}

func TestCmp(t *testing.T) {
	tests := []struct {
		x, y []uint64
		want int
	}{
		{[]uint64{1, 0}, []uint64{1, 0}, 0},
		{[]uint64{2, 0}, []uint64{1, 0}, 1},
		{[]uint64{^uint64(0), 0}, []uint64{0, 1}, -1},
		{[]uint64{0, 2}, []uint64{^uint64(0), 1}, 1},
	}
	for i, test := range tests {
		assert.Equal(t, test.want, Cmp(test.x, test.y), "#%d", i)
	}
}

func TestModWord(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 50; i++ {
		x := randLimbs(rng, 4)
		d := rng.Uint64()>>uint(rng.Intn(63)) | 1
		want := new(big.Int).Mod(toBig(x), new(big.Int).SetUint64(d))
		assert.Equal(t, want.Uint64(), ModWord(x, d))
	}
}

func TestRemAndDivRem(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		x := randLimbs(rng, 8)
		m := randLimbs(rng, 4)
		m[3] >>= uint(rng.Intn(64))
		if IsZero(m) {
			m[0] = 1
		}

		r := make([]uint64, 4)
		Rem(r, x, m)
		want := new(big.Int).Mod(toBig(x), toBig(m))
		require.Equal(t, 0, want.Cmp(toBig(r)))

		x4 := x[:4]
		q := make([]uint64, 4)
		DivRem(q, r, x4, m)
		wq, wr := new(big.Int).QuoRem(toBig(x4), toBig(m), new(big.Int))
		require.Equal(t, 0, wq.Cmp(toBig(q)))
		require.Equal(t, 0, wr.Cmp(toBig(r)))
	}
}

func TestMontMul(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for _, n := range []int{1, 4, 6} {
		for i := 0; i < 25; i++ {
			m := randLimbs(rng, n)
			m[0] |= 1
			x, y := make([]uint64, n), make([]uint64, n)
			Rem(x, randLimbs(rng, n), m)
			Rem(y, randLimbs(rng, n), m)

			z := make([]uint64, n)
			MontMul(z, x, y, m, MontInverse(m[0]), make([]uint64, n+2))

			bm := toBig(m)
			rinv := new(big.Int).ModInverse(modulusFor(n), bm)
			want := new(big.Int).Mul(toBig(x), toBig(y))
			want.Mul(want, rinv)
			want.Mod(want, bm)
			require.Equal(t, 0, want.Cmp(toBig(z)), "n=%d i=%d", n, i)
		}
	}
}

func TestMontInverse(t *testing.T) {
	for _, m0 := range []uint64{1, 3, 0xffffffffffffffff, 0xbfd25e8cd0364141} {
		assert.Equal(t, uint64(0), m0*MontInverse(m0)+1)
	}
}
