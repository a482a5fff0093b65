package shell

import (
	"context"
	"time"

	"github.com/viant/shellkit/internal/idgen"
	"github.com/viant/shellkit/model/exitcode"
)

// Job represents a configured unit of work submitted to a Service.
// Output lines are appended to caller supplied sinks when set.
type Job struct {
	id        string
	service   Service
	root      bool
	scripts   []string
	timeoutMs int
	stdout    *[]string
	stderr    *[]string
}

// NewJob creates a job for the service
func NewJob(service Service, root bool) *Job {
	return &Job{id: idgen.New(), service: service, root: root}
}

// ID returns job identifier
func (j *Job) ID() string {
	return j.id
}

// Root returns true for a privileged job
func (j *Job) Root() bool {
	return j.root
}

// Add appends scripts, empty scripts are skipped
func (j *Job) Add(scripts ...string) *Job {
	for _, script := range scripts {
		if script == "" {
			continue
		}
		j.scripts = append(j.scripts, script)
	}
	return j
}

// To sets output sinks, nil sink discards the stream
func (j *Job) To(stdout, stderr *[]string) *Job {
	j.stdout = stdout
	j.stderr = stderr
	return j
}

// WithTimeout sets timeout in milliseconds, 0 keeps the caller deadline
func (j *Job) WithTimeout(ms int) *Job {
	j.timeoutMs = ms
	return j
}

// Exec runs the job. The returned Raw always references the sinks content.
func (j *Job) Exec(ctx context.Context) (*Raw, error) {
	if j.timeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(j.timeoutMs)*time.Millisecond)
		defer cancel()
	}
	raw, err := j.service.Exec(ctx, j.root, j.scripts...)
	if raw == nil {
		raw = &Raw{Code: exitcode.Exception}
		if IsTimeout(err) {
			raw.Code = exitcode.Timeout
		}
	}
	if j.stdout != nil {
		*j.stdout = append(*j.stdout, raw.Stdout...)
		raw.Stdout = *j.stdout
	}
	if j.stderr != nil {
		*j.stderr = append(*j.stderr, raw.Stderr...)
		raw.Stderr = *j.stderr
	}
	return raw, err
}
