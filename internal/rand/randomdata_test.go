package rand

import "testing"

func TestRandLetterBytes(t *testing.T) {
	name := randLetterBytes(20)
	t.Logf("%v", string(name))
}

func benchmarkRandBytes(b *testing.B, size int) {
	for n := 0; n < b.N; n++ {
		_ = randBytes(size)
	}
}

func BenchmarkRandBytes20(b *testing.B)      { benchmarkRandBytes(b, 20) }
func BenchmarkRandBytes100(b *testing.B)     { benchmarkRandBytes(b, 100) }
func BenchmarkRandBytes500(b *testing.B)     { benchmarkRandBytes(b, 500) }
func BenchmarkRandBytes1000(b *testing.B)    { benchmarkRandBytes(b, 1000) }
func BenchmarkRandBytes1000000(b *testing.B) { benchmarkRandBytes(b, 1000000) }

func benchmarkRandLetterBytes(b *testing.B, size int) {
	for n := 0; n < b.N; n++ {
		_ = randLetterBytes(size)
	}
}

func BenchmarkRandLetterBytes20(b *testing.B)      { benchmarkRandLetterBytes(b, 20) }
func BenchmarkRandLetterBytes100(b *testing.B)     { benchmarkRandLetterBytes(b, 100) }
func BenchmarkRandLetterBytes1000000(b *testing.B) { benchmarkRandLetterBytes(b, 1000000) }
