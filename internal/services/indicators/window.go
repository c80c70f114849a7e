package indicators

// SumWindow is a fixed-capacity FIFO of float64 with a running sum.
// When full, Push evicts the oldest value from the sum before adding the new one.
type SumWindow struct {
	buf  []float64
	head int // index of the oldest value
	size int
	sum  float64
}

// NewSumWindow allocates a window holding at most capacity values.
func NewSumWindow(capacity int) *SumWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &SumWindow{buf: make([]float64, capacity)}
}

// Push appends v and returns the updated sum.
func (w *SumWindow) Push(v float64) float64 {
	if w.size == len(w.buf) {
		w.sum -= w.buf[w.head]
		w.buf[w.head] = v
		w.head = (w.head + 1) % len(w.buf)
	} else {
		w.buf[(w.head+w.size)%len(w.buf)] = v
		w.size++
	}
	w.sum += v
	return w.sum
}

func (w *SumWindow) Sum() float64  { return w.sum }
func (w *SumWindow) Len() int      { return w.size }
func (w *SumWindow) Capacity() int { return len(w.buf) }
