package remote

import (
	"context"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const opTimeout = 30 * time.Second

type OpKind int

const (
	OpSet OpKind = iota
	OpDelete
)

func (k OpKind) String() string {
	if k == OpDelete {
		return "delete"
	}
	return "set"
}

// Op is a single remote write to be executed asynchronously. Doc is only
// set for OpSet.
type Op struct {
	Kind OpKind
	Key  string
	Doc  bson.M
}

// Dispatcher executes remote writes off the caller's goroutine. Each op
// is independent: success and failure are logged and dropped, nothing is
// retried, and a slow or failing remote never blocks local progress or
// aborts other queued ops.
//
// With the default single worker, ops execute in enqueue order, so the
// delete-then-set pair of a key-changing update lands in order. More
// workers trade that ordering away, which the remote contract permits.
type Dispatcher struct {
	store      Store
	logger     *logrus.Logger
	queue      chan Op
	numWorkers int
	wg         sync.WaitGroup
	inflight   sync.WaitGroup
	stopOnce   sync.Once
}

func NewDispatcher(store Store, logger *logrus.Logger, numWorkers int) *Dispatcher {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Dispatcher{
		store:      store,
		logger:     logger,
		queue:      make(chan Op, 1000),
		numWorkers: numWorkers,
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for op := range d.queue {
				d.execute(op)
				d.inflight.Done()
			}
		}()
	}
}

// Enqueue hands an op to the workers and returns immediately.
func (d *Dispatcher) Enqueue(op Op) {
	d.inflight.Add(1)
	d.queue <- op
}

// Flush blocks until every op enqueued so far has been executed. Used at
// shutdown and by tests; the sync engine itself never waits.
func (d *Dispatcher) Flush() {
	d.inflight.Wait()
}

func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

func (d *Dispatcher) execute(op Op) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	opID := uuid.Must(uuid.NewV4())
	entry := d.logger.WithFields(logrus.Fields{
		"opID": opID.String(),
		"kind": op.Kind.String(),
		"key":  op.Key,
	})

	var err error
	switch op.Kind {
	case OpDelete:
		err = d.store.Delete(ctx, op.Key)
	default:
		err = d.store.Set(ctx, op.Key, op.Doc)
	}

	if err != nil {
		// Logged and dropped: remote failures are never surfaced and
		// never trigger a compensating local write.
		entry.WithError(err).Error("RemoteDispatcher.Op.failed")
		if d.logger.IsLevelEnabled(logrus.DebugLevel) && op.Doc != nil {
			entry.Debug(spew.Sdump(op.Doc))
		}
		return
	}

	entry.Debug("RemoteDispatcher.Op.complete")
}
