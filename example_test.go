package vmarena_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hupe1980/vmarena"
	"github.com/hupe1980/vmarena/matrix"
	"github.com/hupe1980/vmarena/pcg"
	"github.com/hupe1980/vmarena/resource"
)

// Example_checkpoint demonstrates discarding temporary allocations in O(1).
func Example_checkpoint() {
	// Reserve 64 MiB of address space, commit in 1 MiB steps.
	a, err := vmarena.New(64<<20, 1<<20)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	header, _ := a.PushZeroed(16)
	mark := a.Pos()

	for range 1000 {
		if _, err := a.Push(256); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println("after pushes:", a.Pos())

	if err := a.PopTo(mark); err != nil {
		log.Fatal(err)
	}
	fmt.Println("after rollback:", a.Pos(), len(header))
	// Output:
	// after pushes: 256016
	// after rollback: 16 16
}

// Example_matrix demonstrates allocating scratch matrices from an arena.
func Example_matrix() {
	a, err := vmarena.New(16<<20, 256<<10)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	err = a.Scope(func(a *vmarena.Arena) error {
		m, err := matrix.New(a, 128, 64)
		if err != nil {
			return err
		}
		m.Fill(pcg.Default(), 0, 1)
		fmt.Println("matrix:", m.Rows(), "x", m.Cols())
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("cursor after scope:", a.Pos())
	// Output:
	// matrix: 128 x 64
	// cursor after scope: 0
}

// Example_budget demonstrates a shared memory budget across arenas.
func Example_budget() {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 8 << 20})

	a, err := vmarena.New(1<<30, 1<<20, vmarena.WithMemoryAcquirer(rc))
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	_, err = a.Push(16 << 20)
	fmt.Println(errors.Is(err, resource.ErrMemoryLimitExceeded))
	// Output: true
}

// Example_workers demonstrates one arena per worker goroutine.
func Example_workers() {
	cfg := vmarena.WorkerConfig{
		Workers:     4,
		ReserveSize: 1 << 20,
		CommitSize:  64 << 10,
	}

	err := vmarena.RunWorkers(context.Background(), cfg, 16, func(_ context.Context, a *vmarena.Arena, task int) error {
		buf, err := vmarena.AllocSliceZeroed[float32](a, 1024)
		if err != nil {
			return err
		}
		buf[0] = float32(task)
		return nil
	})
	fmt.Println(err)
	// Output: <nil>
}
