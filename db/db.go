package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client

	UserCollection          *mongo.Collection
	FollowingsCollection    *mongo.Collection
	SpotsCollection         *mongo.Collection
	PostsCollection         *mongo.Collection
	CommentsCollection      *mongo.Collection
	ReviewsCollection       *mongo.Collection
	ReportsCollection       *mongo.Collection
	NotificationsCollection *mongo.Collection
	InterestsCollection     *mongo.Collection
	UserDataCollection      *mongo.Collection
	WelcomeCollection       *mongo.Collection
	ErrLogsCollection       *mongo.Collection
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("waydown")
	UserCollection = database.Collection("users")
	FollowingsCollection = database.Collection("followings")
	SpotsCollection = database.Collection("spots")
	PostsCollection = database.Collection("posts")
	CommentsCollection = database.Collection("comments")
	ReviewsCollection = database.Collection("reviews")
	ReportsCollection = database.Collection("reports")
	NotificationsCollection = database.Collection("notifications")
	InterestsCollection = database.Collection("interests")
	UserDataCollection = database.Collection("userdata")
	WelcomeCollection = database.Collection("welcome")
	ErrLogsCollection = database.Collection("errlogs")
}

// EnsureIndexes creates the indexes geo queries and lookups depend on.
// The 2dsphere index on spots.location backs every $geoNear pipeline.
func EnsureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	spotIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "spotid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}
	if _, err := SpotsCollection.Indexes().CreateMany(ctx, spotIndexes); err != nil {
		log.Printf("spot index creation failed: %v", err)
	}

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := UserCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		log.Printf("user index creation failed: %v", err)
	}

	notifIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "userid", Value: 1}, {Key: "created_at", Value: -1}},
	}
	if _, err := NotificationsCollection.Indexes().CreateOne(ctx, notifIndex); err != nil {
		log.Printf("notification index creation failed: %v", err)
	}
}
