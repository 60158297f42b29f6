package shell

import (
	conq "github.com/enriquebris/goconcurrentqueue"
)

type fifo interface {
	Enqueue(*command) error
	DequeueOrWaitForNextElement() (*command, error)
	GetLen() int
}

type conqFIFO struct {
	*conq.FIFO
}

func newConqFIFO() *conqFIFO {
	return &conqFIFO{
		FIFO: conq.NewFIFO(),
	}
}

func (c *conqFIFO) Enqueue(cmd *command) error {
	return c.FIFO.Enqueue(cmd)
}

func (c *conqFIFO) DequeueOrWaitForNextElement() (*command, error) {
	tmp, err := c.FIFO.DequeueOrWaitForNextElement()
	if err != nil {
		return nil, err
	}
	return tmp.(*command), nil
}

func (c *conqFIFO) GetLen() int {
	return c.FIFO.GetLen()
}
