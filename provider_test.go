package vmarena

import (
	"github.com/hupe1980/vmarena/internal/vmem"
)

type commitCall struct {
	off, size int
}

// fakeProvider hands out real reservations but records commits and can be
// told to fail them.
type fakeProvider struct {
	reserveErr error
	commitErr  error

	reserves []int
	commits  []commitCall
	released int
}

func (p *fakeProvider) PageSize() int { return vmem.PageSize() }

func (p *fakeProvider) Reserve(size int) (vmem.Reservation, error) {
	p.reserves = append(p.reserves, size)
	if p.reserveErr != nil {
		return nil, p.reserveErr
	}
	r, err := vmem.Reserve(size)
	if err != nil {
		return nil, err
	}
	return &fakeReservation{Region: r, p: p}, nil
}

type fakeReservation struct {
	*vmem.Region
	p *fakeProvider
}

func (r *fakeReservation) Commit(off, size int) error {
	if r.p.commitErr != nil {
		return r.p.commitErr
	}
	r.p.commits = append(r.p.commits, commitCall{off: off, size: size})
	return r.Region.Commit(off, size)
}

func (r *fakeReservation) Release() error {
	r.p.released++
	return r.Region.Release()
}
