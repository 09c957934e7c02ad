package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// successIdx возвращается gracefulClose, если все ресурсы закрыты без прерывания.
const successIdx = -1

// ErrInterrupted — закрытие не уложилось в контекст, оставшиеся ресурсы закрыты принудительно.
var ErrInterrupted = errors.New("shutdown interrupted")

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

type resource struct {
	name string
	fn   Func
}

// Closer закрывает зарегистрированные ресурсы в обратном порядке (LIFO).
// Безопасен для конкурентного использования, Close выполняется один раз.
type Closer struct {
	resources     []resource
	mu            sync.Mutex
	once          sync.Once
	forcedTimeout time.Duration
}

// NewCloser создает новый экземпляр Closer.
// forcedTimeout — время на принудительное закрытие оставшихся ресурсов, если контекст Close истёк.
func NewCloser(forcedTimeout time.Duration) *Closer {
	const defaultForcedTimeout = 2 * time.Second

	if forcedTimeout == 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{
		forcedTimeout: forcedTimeout,
	}
}

// Add регистрирует ресурс. name попадает в текст ошибки закрытия.
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources = append(c.resources, resource{name: name, fn: f})
}

// Close закрывает ресурсы в порядке, обратном регистрации. Ошибки отдельных ресурсов
// собираются через errors.Join. Если ctx истекает раньше, оставшиеся ресурсы
// закрываются параллельно с собственным таймаутом, а результат содержит ErrInterrupted.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		resources := c.resources
		c.mu.Unlock()

		stopIdx, errs := c.gracefulClose(ctx, resources)
		if stopIdx == successIdx {
			err = errors.Join(errs...)
			return
		}

		errs = append(errs, c.forcedClose(resources[:stopIdx+1])...)
		err = errors.Join(append([]error{
			fmt.Errorf("%w after %d/%d resources", ErrInterrupted, len(resources)-1-stopIdx, len(resources)),
		}, errs...)...)
	})

	return err
}

// gracefulClose возвращает индекс ресурса, на котором истёк ctx, или successIdx.
func (c *Closer) gracefulClose(ctx context.Context, resources []resource) (int, []error) {
	var errs []error
	for i := len(resources) - 1; i >= 0; i-- {
		res := resources[i]
		done := make(chan error, 1)

		go func() {
			done <- res.fn(ctx)
		}()

		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", res.name, err))
			}
		case <-ctx.Done():
			return i, errs
		}
	}

	return successIdx, errs
}

func (c *Closer) forcedClose(resources []resource) []error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, res := range resources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := res.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("force close %s: %w", res.name, err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}
