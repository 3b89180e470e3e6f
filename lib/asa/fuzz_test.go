package asa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MaciejGeldon/agds/lib/containers"
)

// FuzzEngine drives an Engine through arbitrary insert/delete
// sequences over a small key domain and checks it against a plain
// map[int]int reference multiset after every operation, the same
// opcode-byte-stream approach containers.FuzzRBTree uses.
func FuzzEngine(f *testing.F) {
	Ins := uint8(0b1000_0000)

	f.Add([]uint8{})
	f.Add([]uint8{Ins | 5, 5})
	f.Add([]uint8{Ins | 5, Ins | 5, 5, 5})
	f.Add([]uint8{ // scenario 6: recursive merge to root
		Ins | 0, Ins | 1, Ins | 2, Ins | 3, Ins | 4, Ins | 5, Ins | 6,
		Ins | 7, Ins | 8, Ins | 9, Ins | 10, Ins | 11, Ins | 12, Ins | 13, Ins | 14,
		12,
	})
	f.Add([]uint8{ // scenario 5: parent absorption
		Ins | 0, Ins | 1, Ins | 2, Ins | 3, Ins | 4,
		0,
	})

	f.Fuzz(func(t *testing.T, dat []uint8) {
		var e Engine[containers.NumericKey[int]]
		want := map[int]int{}
		checkInvariants(t, &e, want)

		for _, b := range dat {
			isIns := (b & 0b1000_0000) != 0
			val := int(b & 0b0011_1111)
			if isIns {
				t.Logf("Insert(%d)", val)
				e.Insert(containers.NumericKey[int]{Val: val})
				want[val]++
			} else {
				t.Logf("Delete(%d)", val)
				found := e.Delete(containers.NumericKey[int]{Val: val})
				require.Equal(t, want[val] > 0, found)
				if want[val] > 0 {
					want[val]--
					if want[val] == 0 {
						delete(want, val)
					}
				}
			}
			checkInvariants(t, &e, want)
		}

		// P6: aggregate consistency against the reference model.
		total := 0
		sum := 0
		for k, c := range want {
			total += c
			sum += k * c
		}
		gotSum, ok := Sum(&e)
		require.Equal(t, total > 0, ok)
		if ok {
			require.Equal(t, sum, gotSum.Val)
			gotMean, _ := Mean(&e)
			require.InDelta(t, float64(sum)/float64(total), gotMean, 1e-9)
		}
	})
}
