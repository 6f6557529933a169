// Package a exercises the ctxescape analyzer.
package a

import (
	"github.com/stealthrocket/genstream"
)

var leaked *genstream.Context[int]

var registry = map[string]*genstream.Context[int]{}

type holder struct {
	ctx *genstream.Context[int]
}

func produce() *genstream.Stream[int, int] {
	return genstream.New(func(c *genstream.Context[int]) int {
		leaked = c // want `generator context stored in package variable leaked`

		h := holder{ctx: c} // want `generator context stored in a composite literal`
		h.ctx = c           // want `generator context stored in a struct field`

		registry["loop"] = c // want `generator context stored in a map or slice element`

		ch := make(chan *genstream.Context[int], 1)
		ch <- c // want `generator context sent on a channel`
		<-ch

		go consume(c) // want `generator context passed to a new goroutine`
		go c.Yield(0) // want `generator context passed to a new goroutine`
		go func() {
			c.Yield(1) // want `generator context captured by a goroutine`
			c.Yield(2)
		}()

		c.Yield(3)
		return 0
	})
}

func consume(c *genstream.Context[int]) {
	c.Yield(4)
}

func leak(c *genstream.Context[int]) *genstream.Context[int] {
	return c // want `generator context returned from a function`
}

// Local aliases and plain helper calls stay within the resume and are fine.
func reuse(c *genstream.Context[int]) {
	d := c
	d.Yield(5)
	helper(c)
}

func helper(c *genstream.Context[int]) {
	c.Yield(6)
}
