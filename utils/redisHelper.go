package utils

import (
	"os"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/auditdesk_backend/config"
)

func GetCacheLifespan() time.Duration {
	lifespan, err := strconv.Atoi(os.Getenv("CACHE_LIFESPAN"))
	if err != nil {
		lifespan = 1
	}
	return time.Duration(lifespan) * time.Hour
}

/* Redis */

// StoreRedisList caches a whole collection under its type name.
func StoreRedisList[T any](obj any, key string) error {
	if key == "" {
		key = GetTypeName[T]() + "List"
	}
	return config.SetRedisObject(key, &obj, GetCacheLifespan())
}

// RetrieveRedisList returns nil (not an error) when the key is absent.
func RetrieveRedisList[T any](key string) ([]*T, error) {
	if key == "" {
		key = GetTypeName[T]() + "List"
	}

	var result []*T
	exists, err := config.GetRedisObject(key, &result)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return result, nil
}

// RemoveRedisList evicts a cached collection.
func RemoveRedisList[T any](key string) error {
	if key == "" {
		key = GetTypeName[T]() + "List"
	}
	return config.RemoveRedisKey(key)
}
