package mapfile

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhelmot/arborio-sub001/binel"
)

// exampleMap is a Map with a Width attribute and one Room child.
func exampleMap() *binel.File {
	root := binel.New("Map")
	root.SetAttr("Width", binel.Int(320))

	room := binel.New("Room")
	room.SetAttr("Name", binel.Text("a-00"))
	root.Insert(room)

	return binel.NewFile("", root)
}

var (
	randNames = []string{"levels", "level", "entities", "spinner", "player", "solids", "bg", "triggers", "decals"}
	randKeys  = []string{"x", "y", "id", "width", "height", "name", "texture", "attached", binel.InnerTextKey}
)

// randomMap builds a deterministic pseudo-random tree exercising every value
// form the encoder can choose.
func randomMap(seed uint64, maxDepth, maxChildren int) *binel.File {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	root := randomElement(rng, "Map", maxDepth, maxChildren)

	return binel.NewFile(fmt.Sprintf("pkg-%d", seed), root)
}

func randomElement(rng *rand.Rand, name string, depth, maxChildren int) *binel.Element {
	el := binel.New(name)
	for range rng.IntN(len(randKeys)) {
		el.SetAttr(randKeys[rng.IntN(len(randKeys))], randomAttr(rng))
	}

	if depth > 1 {
		for range rng.IntN(maxChildren + 1) {
			el.Insert(randomElement(rng, randNames[rng.IntN(len(randNames))], depth-1, maxChildren))
		}
	}

	return el
}

func randomAttr(rng *rand.Rand) binel.Attr {
	switch rng.IntN(7) {
	case 0:
		return binel.Bool(rng.IntN(2) == 1)
	case 1:
		return binel.Int(int32(rng.IntN(256))) //nolint:gosec
	case 2:
		return binel.Int(int32(rng.IntN(65536) - 32768)) //nolint:gosec
	case 3:
		return binel.Int(rng.Int32() - rng.Int32())
	case 4:
		return binel.FloatFromBits(rng.Uint32())
	case 5:
		// long runs favor the run-length form
		var b strings.Builder
		for range rng.IntN(6) {
			b.WriteString(strings.Repeat(string(rune('0'+rng.IntN(4))), rng.IntN(400)))
		}
		return binel.Text(b.String())
	default:
		return binel.Text(fmt.Sprintf("s%d-ü", rng.IntN(50)))
	}
}

func newCodec(t testing.TB, opts ...Option) (*Encoder, *Decoder) {
	t.Helper()

	enc, err := NewEncoder(opts...)
	require.NoError(t, err)
	dec, err := NewDecoder(opts...)
	require.NoError(t, err)

	return enc, dec
}
