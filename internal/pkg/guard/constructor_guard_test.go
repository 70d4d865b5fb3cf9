package guard_test

import (
	"errors"
	"sync"
	"testing"

	"checkout/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("CartLine must be created via NewCartLine constructor")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_supplied_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_with_nil_error_returns_default", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type phone struct {
		digits string
		guard  guard.ConstructorGuard
	}
	errPhoneNotConstructed := errors.New("phone must be created via newPhone")
	newPhone := func(digits string) (phone, error) {
		if digits == "" {
			return phone{}, errors.New("phone is required")
		}
		return phone{digits: digits, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_validates", func(t *testing.T) {
		p, err := newPhone("01712345678")

		require.NoError(t, err)
		require.NoError(t, p.guard.Validate(errPhoneNotConstructed))
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		p, err := newPhone("")

		require.Error(t, err)
		assert.ErrorIs(t, p.guard.Validate(errPhoneNotConstructed), errPhoneNotConstructed)
	})

	t.Run("copy_keeps_state", func(t *testing.T) {
		p, _ := newPhone("01812345678")
		cp := p

		require.NoError(t, cp.guard.Validate(errPhoneNotConstructed))
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(nil))
		}()
	}
	wg.Wait()
}
