package timer

import (
	"context"
	"errors"
	"time"

	"timelogger/bizerror"
	"timelogger/common"
	"timelogger/domain"
	"timelogger/persistence"

	"github.com/sirupsen/logrus"
)

var (
	StatusFunc = Status
	StartFunc  = Start
	StopFunc   = Stop

	ActiveStore Store = NewMemoryStore()

	timeNow = time.Now
)

// Entry is the single running time registration.
type Entry struct {
	Running   bool      `json:"running"`
	TaskID    uint      `json:"taskId"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"startTime"`
}

// Stopped carries the finished interval, ready to be submitted as a time record.
type Stopped struct {
	TaskID    uint      `json:"taskId"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type StartRequest struct {
	TaskID uint `json:"taskId" binding:"required"`
}

// Status returns the running entry, nil when idle.
func Status(ctx context.Context) (*Entry, error) {
	return ActiveStore.Get()
}

func Start(ctx context.Context, r *StartRequest) (*Entry, error) {
	t, err := domain.NewStore(persistence.ActiveDataSourceManager.GormDB(ctx)).FindTask(r.TaskID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, bizerror.NewErrTaskNotFound(r.TaskID)
	} else if err != nil {
		return nil, bizerror.SQL(err)
	}

	e := Entry{Running: true, TaskID: t.TaskID, Name: t.Name, StartTime: timeNow().UTC().Truncate(time.Second)}
	if err := ActiveStore.Create(e); err != nil {
		return nil, err
	}
	common.Log.WithFields(logrus.Fields{"taskId": e.TaskID, "startTime": e.StartTime}).Info("timer started")
	return &e, nil
}

func Stop(ctx context.Context) (*Stopped, error) {
	e, err := ActiveStore.Remove()
	if err != nil {
		return nil, err
	}
	s := Stopped{TaskID: e.TaskID, Name: e.Name, StartTime: e.StartTime, EndTime: timeNow().UTC().Truncate(time.Second)}
	common.Log.WithFields(logrus.Fields{"taskId": s.TaskID, "elapsed": s.EndTime.Sub(s.StartTime).String()}).Info("timer stopped")
	return &s, nil
}
