package checks

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Session страница в собственном браузере. Каждая проверка получает новую сессию.
type Session interface {
	TablePage
	Close() error
}

type SessionFactory func(ctx context.Context) (Session, error)

type Result struct {
	Name        string
	Description string
	Passed      bool
	Err         error
	Duration    time.Duration
	Screenshot  string
}

func (r Result) Status() string {
	if r.Passed {
		return "pass"
	}
	return "fail"
}

type Runner struct {
	env        *Env
	newSession SessionFactory
	log        *zap.Logger
	onResult   func(Result)
	now        func() time.Time
}

func NewRunner(env *Env, newSession SessionFactory, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		env:        env,
		newSession: newSession,
		log:        log,
		now:        time.Now,
	}
}

// OnResult вызывается после каждой проверки
func (r *Runner) OnResult(fn func(Result)) {
	r.onResult = fn
}

// Run выполняет проверки последовательно, без повторов
func (r *Runner) Run(ctx context.Context, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		if ctx.Err() != nil {
			break
		}

		res := r.runOne(ctx, c)
		results = append(results, res)

		if res.Passed {
			r.log.Info("PASS", zap.String("check", c.Name), zap.Duration("duration", res.Duration))
		} else {
			r.log.Error("FAIL", zap.String("check", c.Name), zap.Error(res.Err))
		}

		if r.onResult != nil {
			r.onResult(res)
		}
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, c Check) Result {
	start := r.now()
	res := Result{Name: c.Name, Description: c.Description}

	session, err := r.newSession(ctx)
	if err != nil {
		res.Err = fmt.Errorf("ошибка запуска браузера: %w", err)
		res.Duration = r.now().Sub(start)
		return res
	}
	defer func() {
		if err := session.Close(); err != nil {
			r.log.Warn("Ошибка закрытия браузера", zap.String("check", c.Name), zap.Error(err))
		}
	}()

	err = session.Load(ctx)
	if err == nil {
		err = c.Run(ctx, r.env, session)
	}

	res.Duration = r.now().Sub(start)
	if err == nil {
		res.Passed = true
		return res
	}

	res.Err = err
	path := filepath.Join(r.env.OutputDir, c.Name+".png")
	if shotErr := session.Screenshot(ctx, path); shotErr != nil {
		r.log.Warn("Не удалось сделать скриншот", zap.String("check", c.Name), zap.Error(shotErr))
	} else {
		res.Screenshot = path
		r.log.Info("Скриншот сохранен", zap.String("path", path))
	}
	return res
}

// Failed считает непройденные проверки
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
