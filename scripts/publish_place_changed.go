//go:build ignore

// Публикует PlaceChangedEvent и ждёт, пока воркер сбросит кеш региона.
//
//	go run scripts/publish_place_changed.go -city cusco
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tourist-map/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	city := flag.String("city", "cusco", "region slug of the changed place")
	previous := flag.String("previous-city", "", "previous region slug when the place moved")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Метка в кеше, которую должен удалить воркер
	cacheKey := "map:city:" + *city
	if err := client.Set(ctx, cacheKey, "[]", time.Hour).Err(); err != nil {
		log.Fatalf("Failed to seed cache key: %v", err)
	}

	event := domain.PlaceChangedEvent{
		EventID:    uuid.New(),
		PlaceID:    uuid.New(),
		CitySlug:   *city,
		Kind:       domain.PlaceUpdated,
		Status:     domain.PlaceStatusPublished,
		OccurredAt: time.Now().UTC(),
	}
	if *previous != "" {
		event.PreviousCitySlug = previous
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamPlacesChanged,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamPlacesChanged)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Cities: %v\n", event.AffectedCities())

	fmt.Printf("\nWaiting for %s to be invalidated...\n", cacheKey)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			log.Fatalf("Timeout: %s is still cached", cacheKey)
		case <-ticker.C:
			n, err := client.Exists(ctx, cacheKey).Result()
			if err != nil {
				continue
			}
			if n == 0 {
				fmt.Printf("Cache invalidated\n")
				return
			}
		}
	}
}
