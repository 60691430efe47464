package bigint

// Width is the constraint satisfied by the limb arrays that back an Int.  It
// is implemented by the pointer types of W256 through W4096 only; the limb
// count is fixed by the array length at compile time.
type Width[A any] interface {
	*A
	words() []uint64
}

// Limb arrays for each supported width.  Index 0 is the least significant
// limb.
type (
	W256  [4]uint64
	W384  [6]uint64
	W512  [8]uint64
	W1024 [16]uint64
	W2048 [32]uint64
	W4096 [64]uint64
)

func (w *W256) words() []uint64  { return w[:] }
func (w *W384) words() []uint64  { return w[:] }
func (w *W512) words() []uint64  { return w[:] }
func (w *W1024) words() []uint64 { return w[:] }
func (w *W2048) words() []uint64 { return w[:] }
func (w *W4096) words() []uint64 { return w[:] }

// Fixed-width integer types.
type (
	U256  = Int[W256, *W256]
	U384  = Int[W384, *W384]
	U512  = Int[W512, *W512]
	U1024 = Int[W1024, *W1024]
	U2048 = Int[W2048, *W2048]
	U4096 = Int[W4096, *W4096]
)
