package genstream_test

import (
	"context"
	"fmt"
	"time"

	"github.com/stealthrocket/genstream"
	"github.com/stealthrocket/genstream/drive"
	"github.com/stealthrocket/genstream/source"
)

func ExampleNew() {
	squares := genstream.New(func(c *genstream.Context[int]) string {
		for i := 1; i <= 3; i++ {
			c.Yield(i * i)
		}
		return "all done"
	})

	items, _ := drive.Collect(context.Background(), squares)
	final, _ := squares.Final()
	fmt.Println(items, final)
	// Output: [1 4 9] all done
}

func ExampleAwait() {
	price := source.NewPromise[float64]()

	quotes := genstream.New(func(c *genstream.Context[string]) struct{} {
		p := genstream.Await[float64](c, price)
		c.Yield(fmt.Sprintf("last trade %.2f", p))
		return struct{}{}
	})

	// The stream reports pending until the promise completes; completing it
	// wakes the driver.
	go func() {
		time.Sleep(10 * time.Millisecond)
		price.Complete(42000.5)
	}()

	items, _ := drive.Collect(context.Background(), quotes)
	fmt.Println(items)
	// Output: [last trade 42000.50]
}

func ExampleNewPerpetual() {
	naturals := genstream.NewPerpetual(func(c *genstream.Context[int]) {
		for i := 1; ; i++ {
			c.Yield(i)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sum := 0
	err := drive.Forever(ctx, naturals, func(n int) error {
		sum += n
		if n == 4 {
			cancel()
		}
		return nil
	})
	fmt.Println(sum, err)
	// Output: 10 context canceled
}
