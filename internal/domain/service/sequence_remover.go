package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/nestjam/yap-sequencer/internal/domain"
)

// ErrRemoverClosed возвращается, если удаление запрошено после остановки SequenceRemover.
var ErrRemoverClosed = errors.New("sequence remover is closed")

type deletingSequences struct {
	names []string
	owner domain.UserID
}

// SequenceRemover удаляет последовательности в фоновой горутине.
type SequenceRemover struct {
	deleteCh chan deletingSequences
	doneCh   <-chan struct{}
}

// NewSequenceRemover запускает удаление последовательностей до закрытия doneCh.
// Отмена ctx не прерывает удаление: из ctx берутся только значения.
func NewSequenceRemover(ctx context.Context, doneCh <-chan struct{}, store domain.SequenceStore, log *zap.Logger) *SequenceRemover {
	ctx = context.WithoutCancel(ctx)
	r := &SequenceRemover{
		deleteCh: make(chan deletingSequences),
		doneCh:   doneCh,
	}

	go func() {
		for {
			select {
			case <-r.doneCh:
				return
			case val := <-r.deleteCh:
				err := store.DeleteSequences(ctx, val.names, val.owner)
				if err != nil {
					log.Error("delete sequences",
						zap.Strings("names", val.names),
						zap.Stringer("owner", val.owner),
						zap.Error(err))
				}
			}
		}
	}()

	return r
}

// DeleteSequences ставит последовательности в очередь на удаление и сразу возвращает управление.
func (r *SequenceRemover) DeleteSequences(names []string, owner domain.UserID) error {
	select {
	case <-r.doneCh:
		return ErrRemoverClosed
	default:
	}

	go func() {
		val := deletingSequences{
			names: names,
			owner: owner,
		}

		select {
		case r.deleteCh <- val:
		case <-r.doneCh:
		}
	}()

	return nil
}
