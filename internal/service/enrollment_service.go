package service

import (
	"context"
	"fmt"
	"sync"

	"school_reports_backend/internal/model"
	"school_reports_backend/internal/repository"
	"school_reports_backend/internal/util"
	"school_reports_backend/pkg/logger"
	"school_reports_backend/pkg/timeouts"

	"go.uber.org/zap"
)

// Key identifies one student in one subject. A student holds at most one
// elective per subject.
type Key struct {
	StudentID uint
	SubjectID uint
}

type Cupos struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

// Ledger is the local view of elective enrollments and cupos. It is only
// changed by Sync (a fresh snapshot from the source) and Apply (after the
// source acknowledged a command).
type Ledger struct {
	mu       sync.Mutex
	enrolled map[Key]uint // elective id
	cupos    map[uint]Cupos
	subjects map[uint]uint // elective id -> subject id
}

func NewLedger() *Ledger {
	return &Ledger{
		enrolled: make(map[Key]uint),
		cupos:    make(map[uint]Cupos),
		subjects: make(map[uint]uint),
	}
}

// Sync replaces everything known about one elective with e.
func (l *Ledger) Sync(e *model.Elective) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, id := range l.enrolled {
		if id == e.ID {
			delete(l.enrolled, k)
		}
	}
	for _, studentID := range e.Enrolled {
		l.enrolled[Key{StudentID: studentID, SubjectID: e.SubjectID}] = e.ID
	}
	l.cupos[e.ID] = Cupos{Total: e.CuposTotal, Available: e.CuposAvailable}
	l.subjects[e.ID] = e.SubjectID
}

// Lookup returns the elective the student holds in the subject.
func (l *Ledger) Lookup(k Key) (uint, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id, ok := l.enrolled[k]
	return id, ok
}

func (l *Ledger) Cupos(electiveID uint) (Cupos, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.cupos[electiveID]
	return c, ok
}

// Action is what an enrollment command does.
type Action string

const (
	ActionEnroll   Action = "enroll"
	ActionUnenroll Action = "unenroll"
)

// Command is one enrollment change. Before Execute the ledger is unchanged;
// after a successful Execute it reflects the change the source acknowledged.
// A failed Execute leaves the ledger as the last Sync left it.
type Command struct {
	Action     Action
	ElectiveID uint
	StudentID  uint
}

// check validates the command against the ledger. The caller holds no lock;
// the source remains the authority and may still refuse.
func (l *Ledger) check(cmd Command, subjectID uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := Key{StudentID: cmd.StudentID, SubjectID: subjectID}
	current, enrolled := l.enrolled[k]
	switch cmd.Action {
	case ActionEnroll:
		if enrolled {
			return fmt.Errorf("%w: student %d holds elective %d", util.ErrAlreadyEnrolled, cmd.StudentID, current)
		}
		if c := l.cupos[cmd.ElectiveID]; c.Available <= 0 {
			return fmt.Errorf("%w: elective %d", util.ErrNoCupos, cmd.ElectiveID)
		}
	case ActionUnenroll:
		if !enrolled || current != cmd.ElectiveID {
			return fmt.Errorf("%w: student %d in elective %d", util.ErrNotEnrolled, cmd.StudentID, cmd.ElectiveID)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", util.ErrInvalidQuery, cmd.Action)
	}
	return nil
}

// Apply records an acknowledged command.
func (l *Ledger) Apply(cmd Command) Cupos {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := Key{StudentID: cmd.StudentID, SubjectID: l.subjects[cmd.ElectiveID]}
	c := l.cupos[cmd.ElectiveID]
	switch cmd.Action {
	case ActionEnroll:
		if _, ok := l.enrolled[k]; !ok {
			l.enrolled[k] = cmd.ElectiveID
			if c.Available > 0 {
				c.Available--
			}
		}
	case ActionUnenroll:
		if _, ok := l.enrolled[k]; ok {
			delete(l.enrolled, k)
			if c.Available < c.Total {
				c.Available++
			}
		}
	}
	l.cupos[cmd.ElectiveID] = c
	return c
}

// EnrollmentResult is the state after a command.
type EnrollmentResult struct {
	ElectiveID uint  `json:"electiveId"`
	SubjectID  uint  `json:"subjectId"`
	StudentID  uint  `json:"studentId"`
	Enrolled   bool  `json:"enrolled"`
	Cupos      Cupos `json:"cupos"`
}

type EnrollmentService struct {
	source repository.Source
	ledger *Ledger
}

func NewEnrollmentService(source repository.Source) *EnrollmentService {
	return &EnrollmentService{source: source, ledger: NewLedger()}
}

func (s *EnrollmentService) Ledger() *Ledger {
	return s.ledger
}

// Elective reads a fresh snapshot of the elective into the ledger.
func (s *EnrollmentService) Elective(ctx context.Context, id uint) (*model.Elective, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), logger.Log, "get elective")
	defer cancel()

	e, err := s.source.GetElective(ctx, id)
	if err != nil {
		return nil, err
	}
	s.ledger.Sync(e)
	return e, nil
}

// Execute runs a command with the pessimistic policy: sync, check, call the
// source, and only on acknowledgement apply to the ledger.
func (s *EnrollmentService) Execute(ctx context.Context, cmd Command) (*EnrollmentResult, error) {
	e, err := s.Elective(ctx, cmd.ElectiveID)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.check(cmd, e.SubjectID); err != nil {
		return nil, err
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), logger.Log, string(cmd.Action))
	defer cancel()

	switch cmd.Action {
	case ActionEnroll:
		err = s.source.Enroll(ctx, cmd.ElectiveID, cmd.StudentID)
	case ActionUnenroll:
		err = s.source.Unenroll(ctx, cmd.ElectiveID, cmd.StudentID)
	}
	if err != nil {
		logger.Log.Warn("enrollment refused",
			zap.String("action", string(cmd.Action)),
			zap.Uint("elective", cmd.ElectiveID),
			zap.Uint("student", cmd.StudentID),
			zap.Error(err),
		)
		return nil, err
	}

	cupos := s.ledger.Apply(cmd)
	return &EnrollmentResult{
		ElectiveID: cmd.ElectiveID,
		SubjectID:  e.SubjectID,
		StudentID:  cmd.StudentID,
		Enrolled:   cmd.Action == ActionEnroll,
		Cupos:      cupos,
	}, nil
}

func (s *EnrollmentService) Enroll(ctx context.Context, electiveID, studentID uint) (*EnrollmentResult, error) {
	return s.Execute(ctx, Command{Action: ActionEnroll, ElectiveID: electiveID, StudentID: studentID})
}

func (s *EnrollmentService) Unenroll(ctx context.Context, electiveID, studentID uint) (*EnrollmentResult, error) {
	return s.Execute(ctx, Command{Action: ActionUnenroll, ElectiveID: electiveID, StudentID: studentID})
}
