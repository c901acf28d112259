package matmul_test

import (
	"fmt"

	"github.com/cwbudde/algo-parbench/matmul"
)

func ExampleMulSequential() {
	a, err := matmul.NewPattern(4)
	if err != nil {
		panic(err)
	}

	b, err := matmul.NewPattern(4)
	if err != nil {
		panic(err)
	}

	c, err := matmul.New(4)
	if err != nil {
		panic(err)
	}

	if _, err := matmul.MulSequential(a, b, c); err != nil {
		panic(err)
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			fmt.Printf("%6.0f", c.At(i, j))
		}

		fmt.Println()
	}

	// Output:
	//     30    40    50    60
	//     40    54    68    82
	//     50    68    86   104
	//     60    82   104   126
}
