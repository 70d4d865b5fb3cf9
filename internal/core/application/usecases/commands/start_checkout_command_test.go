package commands_test

import (
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartCheckoutCommand(t *testing.T) {
	t.Run("should build the cart", func(t *testing.T) {
		cmd, err := commands.NewStartCheckoutCommand([]commands.StartCheckoutItem{
			{ID: "sku-1", Name: "Panjabi", UnitPrice: kernel.MustMoneyFromInt(200), Quantity: 2},
			{ID: "sku-2", Name: "Saree", UnitPrice: kernel.MustMoneyFromInt(1500), Quantity: 1},
		})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, 2, cmd.Cart().Len())
	})

	t.Run("should report every bad item", func(t *testing.T) {
		_, err := commands.NewStartCheckoutCommand([]commands.StartCheckoutItem{
			{ID: "", Name: "Panjabi", UnitPrice: kernel.MustMoneyFromInt(200), Quantity: 1},
			{ID: "sku-2", Name: "Saree", UnitPrice: kernel.MustMoneyFromInt(1500), Quantity: 0},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "item 0")
		assert.Contains(t, err.Error(), "item 1")
	})

	t.Run("should reject duplicate ids", func(t *testing.T) {
		item := commands.StartCheckoutItem{ID: "sku-1", Name: "Panjabi", UnitPrice: kernel.MustMoneyFromInt(200), Quantity: 1}

		_, err := commands.NewStartCheckoutCommand([]commands.StartCheckoutItem{item, item})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.StartCheckoutCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrStartCheckoutCommandIsNotConstructed)
	})
}

func TestSessionCommandConstructors(t *testing.T) {
	t.Run("change quantity reports all errors", func(t *testing.T) {
		_, err := commands.NewChangeQuantityCommand(kernel.UUID{}, " ", 0)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("update delivery details enforces length bounds", func(t *testing.T) {
		long := make([]rune, commands.MaxNotesLength+1)
		for i := range long {
			long[i] = 'ক'
		}

		_, err := commands.NewUpdateDeliveryDetailsCommand(kernel.NewUUID(), detailsWithNotes(string(long)))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "notes length")
	})

	t.Run("update delivery details counts characters, not bytes", func(t *testing.T) {
		notes := make([]rune, commands.MaxNotesLength)
		for i := range notes {
			notes[i] = 'ক'
		}

		_, err := commands.NewUpdateDeliveryDetailsCommand(kernel.NewUUID(), detailsWithNotes(string(notes)))

		require.NoError(t, err)
	})

	t.Run("sweep requires positive ttl", func(t *testing.T) {
		_, err := commands.NewSweepStaleSessionsCommand(0, time.Minute)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
