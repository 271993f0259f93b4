package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Jeevagan-dev/attendance/config"
	"github.com/Jeevagan-dev/attendance/models"
)

// SettingsRepository is the process-wide location policy store. The flag is
// read on every logging attempt but toggled rarely, so reads sit behind a
// short TTL cache; a briefly stale read is an accepted trade-off, and the
// default-insert race between two first readers resolves as last write wins.
type SettingsRepository interface {
	GetLocationRestriction(ctx context.Context) (bool, error)
	SetLocationRestriction(ctx context.Context, enabled bool) error
}

const settingsCacheTTL = 30 * time.Second

type settingsRepository struct {
	collection *mongo.Collection
	cache      *cache.Cache
}

func NewSettingsRepository() SettingsRepository {
	return &settingsRepository{
		collection: config.GetCollection(config.SettingsCollection),
		cache:      cache.New(settingsCacheTTL, time.Minute),
	}
}

// GetLocationRestriction defaults and persists true when the setting has
// never been written.
func (r *settingsRepository) GetLocationRestriction(ctx context.Context) (bool, error) {
	if cached, found := r.cache.Get(models.LocationRestrictionSetting); found {
		return cached.(bool), nil
	}

	var setting models.Setting
	filter := bson.M{"setting": models.LocationRestrictionSetting}

	err := r.collection.FindOne(ctx, filter).Decode(&setting)
	if errors.Is(err, mongo.ErrNoDocuments) {
		_, insertErr := r.collection.InsertOne(ctx, models.Setting{
			Name:  models.LocationRestrictionSetting,
			Value: true,
		})
		if insertErr != nil && !mongo.IsDuplicateKeyError(insertErr) {
			return false, fmt.Errorf("failed to persist default location restriction: %w", insertErr)
		}
		r.cache.SetDefault(models.LocationRestrictionSetting, true)
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read location restriction: %w", err)
	}

	r.cache.SetDefault(models.LocationRestrictionSetting, setting.Value)
	return setting.Value, nil
}

func (r *settingsRepository) SetLocationRestriction(ctx context.Context, enabled bool) error {
	filter := bson.M{"setting": models.LocationRestrictionSetting}
	update := bson.M{"$set": bson.M{"value": enabled}}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to update location restriction: %w", err)
	}

	r.cache.SetDefault(models.LocationRestrictionSetting, enabled)
	return nil
}
