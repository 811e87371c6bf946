package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"school_reports_backend/internal/model"
	"school_reports_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enrollmentFixture(available int) (*EnrollmentService, *fakeSource) {
	src := newFakeSource()
	src.electives[1] = &model.Elective{ID: 1, Name: "Filosofía", SubjectID: 30, CuposTotal: 3, CuposAvailable: available, Enrolled: []uint{100}}
	src.electives[2] = &model.Elective{ID: 2, Name: "Filosofía política", SubjectID: 30, CuposTotal: 3, CuposAvailable: 3}
	return NewEnrollmentService(src), src
}

func TestEnroll(t *testing.T) {
	svc, src := enrollmentFixture(2)
	ctx := context.Background()

	res, err := svc.Enroll(ctx, 1, 7)
	require.NoError(t, err)
	assert.True(t, res.Enrolled)
	assert.Equal(t, uint(30), res.SubjectID)
	assert.Equal(t, Cupos{Total: 3, Available: 1}, res.Cupos)

	id, ok := svc.Ledger().Lookup(Key{StudentID: 7, SubjectID: 30})
	assert.True(t, ok)
	assert.Equal(t, uint(1), id)
	assert.Equal(t, 1, src.remote)
}

func TestEnroll_AlreadyInSubject(t *testing.T) {
	svc, src := enrollmentFixture(2)

	_, err := svc.Enroll(context.Background(), 1, 100)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)

	// student 100 holds elective 1 of the same subject
	_, err = svc.Enroll(context.Background(), 2, 100)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
	assert.Zero(t, src.remote)
}

func TestEnroll_NoCupos(t *testing.T) {
	svc, src := enrollmentFixture(0)

	_, err := svc.Enroll(context.Background(), 1, 7)
	assert.ErrorIs(t, err, util.ErrNoCupos)
	assert.Zero(t, src.remote)
}

func TestEnroll_RemoteRefusalLeavesLedger(t *testing.T) {
	svc, src := enrollmentFixture(2)
	src.enrollErr = errors.New("upstream down")

	_, err := svc.Enroll(context.Background(), 1, 7)
	require.Error(t, err)
	assert.Equal(t, 1, src.remote)

	_, ok := svc.Ledger().Lookup(Key{StudentID: 7, SubjectID: 30})
	assert.False(t, ok)
	c, _ := svc.Ledger().Cupos(1)
	assert.Equal(t, Cupos{Total: 3, Available: 2}, c)
}

func TestUnenroll(t *testing.T) {
	svc, _ := enrollmentFixture(2)
	ctx := context.Background()

	res, err := svc.Unenroll(ctx, 1, 100)
	require.NoError(t, err)
	assert.False(t, res.Enrolled)
	assert.Equal(t, 3, res.Cupos.Available)

	_, err = svc.Unenroll(ctx, 1, 100)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	_, err = svc.Unenroll(ctx, 2, 5)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestEnroll_UnknownElective(t *testing.T) {
	svc, _ := enrollmentFixture(2)
	_, err := svc.Enroll(context.Background(), 9, 7)
	assert.ErrorIs(t, err, util.ErrElectiveNotFound)
}

func TestEnroll_ConcurrentLastCupos(t *testing.T) {
	svc, src := enrollmentFixture(2)

	var wg sync.WaitGroup
	errs := make([]error, 6)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Enroll(context.Background(), 1, uint(200+i))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, util.ErrNoCupos)
		}
	}
	assert.Equal(t, 2, ok)
	assert.Zero(t, src.electives[1].CuposAvailable)
}

func TestLedger_ApplyClamps(t *testing.T) {
	l := NewLedger()
	l.Sync(&model.Elective{ID: 1, SubjectID: 2, CuposTotal: 1, CuposAvailable: 1})

	c := l.Apply(Command{Action: ActionEnroll, ElectiveID: 1, StudentID: 5})
	assert.Equal(t, 0, c.Available)
	// applying twice does not count twice
	c = l.Apply(Command{Action: ActionEnroll, ElectiveID: 1, StudentID: 5})
	assert.Equal(t, 0, c.Available)

	c = l.Apply(Command{Action: ActionUnenroll, ElectiveID: 1, StudentID: 5})
	assert.Equal(t, 1, c.Available)
	c = l.Apply(Command{Action: ActionUnenroll, ElectiveID: 1, StudentID: 5})
	assert.Equal(t, 1, c.Available)

	assert.ErrorIs(t, l.check(Command{Action: "transfer", ElectiveID: 1, StudentID: 5}, 2), util.ErrInvalidQuery)
}
