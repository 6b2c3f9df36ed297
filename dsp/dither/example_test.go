package dither_test

import (
	"fmt"

	"github.com/cwbudde/algo-synthvoice/dsp/dither"
)

func ExampleQuantizer_QuantizeBlock() {
	q, err := dither.NewQuantizer(dither.WithDitherType(dither.DitherNone))
	if err != nil {
		panic(err)
	}

	pcm := make([]int, 3)
	q.QuantizeBlock(pcm, []float64{1, -0.5, 0})

	fmt.Println(pcm)
	// Output: [32767 -16384 0]
}
