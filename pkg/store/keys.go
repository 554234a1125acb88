package store

import "strings"

// Every key the service touches lives under one namespace so a shared
// redis instance can be swept or inspected by prefix.
const Namespace = "orders"

func KeyName(parts ...string) string {
	return Namespace + ":" + strings.Join(parts, ":")
}

func RestaurantKey(id string) string { return KeyName("restaurants", id) }

func ReviewsKey(restaurantID string) string { return KeyName("reviews", restaurantID) }

func ReviewDetailsKey(reviewID string) string { return KeyName("review_details", reviewID) }

func CuisinesKey() string { return KeyName("cuisines") }

func CuisineKey(name string) string { return KeyName("cuisine", name) }

func RestaurantCuisinesKey(id string) string { return KeyName("restaurant_cuisines", id) }

// RestaurantsByRatingKey is the sorted set backing the leaderboard.
const RestaurantsByRatingKey = Namespace + ":restaurants_by_rating"

// BloomKey is the existence filter fed on restaurant creation.
const BloomKey = Namespace + ":bloom_restaurants"

// IndexKey is the RediSearch index over restaurant hashes.
const IndexKey = Namespace + ":idx_restaurants"
