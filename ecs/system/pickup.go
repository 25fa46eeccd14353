package system

import (
	"github.com/milk9111/spritescene/ecs"
	"github.com/milk9111/spritescene/ecs/component"
	"github.com/milk9111/spritescene/state"
	log "github.com/sirupsen/logrus"
)

// PickupSystem consumes pickup events: the item is destroyed and its value
// is added to the persisted score.
type PickupSystem struct {
	store *state.Store
}

func NewPickupSystem(store *state.Store) *PickupSystem {
	return &PickupSystem{store: store}
}

func (s *PickupSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, evt := range w.Events().DrainType(ecs.EventPickup) {
		data, ok := evt.Data.(ecs.PickupEvent)
		if !ok {
			continue
		}
		pickup, ok := ecs.Get(w, data.Item, component.PickupComponent.Kind())
		if !ok || pickup.Collected {
			continue
		}
		pickup.Collected = true

		name := ""
		if sprite, ok := ecs.Get(w, data.Item, component.SpriteComponent.Kind()); ok {
			name = sprite.Name
		}

		if s.store != nil && pickup.Value != 0 {
			score, err := s.store.AddScore(pickup.Value)
			if err != nil {
				log.WithError(err).WithField("item", name).Error("pickup: update score")
			} else {
				log.WithFields(log.Fields{"item": name, "value": pickup.Value, "score": score}).Info("pickup: collected")
			}
		}

		ecs.DestroyEntity(w, data.Item)
	}
}
