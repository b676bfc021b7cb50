// Seed wipes the users, posts and comments collections and repopulates them
// from the embedded fixture dataset. Ids are generated deterministically and
// every fixture user gets the placeholder password "testpassword".
package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"campushub/config"
	"campushub/models"

	"github.com/brianvoe/gofakeit/v6"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "testpassword"

var ist = time.FixedZone("IST", 5*3600+30*60)

type seedComment struct {
	content    string
	authorName string
	createdAt  string
}

type seedPost struct {
	title       string
	content     string
	category    string
	authorName  string
	createdAt   string
	link        string
	attachments []string
	likes       []string
	tagNames    []string
	comments    []seedComment
}

var fixturePosts = []seedPost{
	{
		title:       "JavaScript Fundamentals Study Notes",
		content:     "Comprehensive notes covering JavaScript basics, ES6 features, and common patterns. Perfect for beginners and intermediate developers.",
		category:    "notes",
		authorName:  "John Doe",
		createdAt:   "2024-01-15T10:30:00Z",
		attachments: []string{"https://example.com/notes1.pdf"},
		likes:       []string{"user1", "user2"},
		comments: []seedComment{
			{content: "Great notes! Very helpful for my studies.", authorName: "Jane Smith", createdAt: "2024-01-15T11:00:00Z"},
		},
	},
	{
		title:      "Frontend Developer Position Available",
		content:    "We are hiring a frontend developer with React experience. Remote work available, competitive salary. Send your resume!",
		category:   "jobs",
		authorName: "Tech Corp HR",
		createdAt:  "2024-01-14T09:15:00Z",
		likes:      []string{"user1", "user4"},
		comments: []seedComment{
			{content: "Is this position still open?", authorName: "John Doe", createdAt: "2024-01-14T10:00:00Z"},
		},
	},
	{
		title:      "Best Practices for Student Collaboration",
		content:    "Let's discuss the best ways to collaborate on group projects. Share your experiences and tips!",
		category:   "threads",
		authorName: "Jane Smith",
		createdAt:  "2024-01-13T14:20:00Z",
		likes:      []string{"user1", "user3", "user4"},
		comments: []seedComment{
			{content: "I find using GitHub for version control really helps!", authorName: "John Doe", createdAt: "2024-01-13T15:00:00Z"},
			{content: "Regular meetings and clear communication are key.", authorName: "Mike Johnson", createdAt: "2024-01-13T16:30:00Z"},
		},
	},
	{
		title:       "React Hooks Complete Guide",
		content:     "Detailed guide covering useState, useEffect, useContext, and custom hooks. Includes practical examples and best practices.",
		category:    "notes",
		authorName:  "Mike Johnson",
		createdAt:   "2024-01-12T16:45:00Z",
		attachments: []string{"https://example.com/react-hooks.pdf", "https://example.com/examples.zip"},
		likes:       []string{"user1", "user2", "user3"},
	},
	{
		title:       "Summer Internship Opportunities",
		content:     "Multiple internship positions available for computer science students. Paid positions with learning opportunities.",
		category:    "jobs",
		authorName:  "Startup Inc",
		createdAt:   "2024-01-11T11:30:00Z",
		attachments: []string{"https://example.com/internship-details.pdf"},
		likes:       []string{"user1", "user2"},
		comments: []seedComment{
			{content: "What are the requirements for these positions?", authorName: "Jane Smith", createdAt: "2024-01-11T12:00:00Z"},
		},
	},
	{
		title:      "Machine Learning Study Group",
		content:    "Join our weekly study group to discuss machine learning concepts and projects.",
		category:   "threads",
		authorName: "Sara Lee",
		createdAt:  "2024-01-10T10:00:00Z",
		likes:      []string{"user2", "user3"},
	},
	{
		title:      "Scholarship Alert: Apply Now!",
		content:    "New scholarships available for STEM students. Check eligibility and apply soon.",
		category:   "jobs",
		authorName: "Scholarship Board",
		createdAt:  "2024-01-09T09:00:00Z",
		likes:      []string{"user1"},
	},
	{
		title:      "Share Your Favorite Coding Resources",
		content:    "Let us know your go-to websites, books, or videos for learning programming.",
		category:   "threads",
		authorName: "Alex Kim",
		createdAt:  "2024-01-08T08:00:00Z",
	},
	{
		title:      "Exam Tips & Tricks",
		content:    "Share your best tips for preparing and succeeding in exams.",
		category:   "notes",
		authorName: "Priya Patel",
		createdAt:  "2024-01-07T07:00:00Z",
		likes:      []string{"user3"},
	},
	{
		title:       "Group Project: Final Report Template",
		content:     "Here is the template for our final report. Please review and let me know if you have suggestions. @Jane Smith and @Alex Kim, you are tagged for feedback.",
		category:    "notes",
		authorName:  "John Doe",
		createdAt:   "2024-07-07T10:00:00Z",
		attachments: []string{"https://example.com/final-report-template.pdf"},
		likes:       []string{"user2", "user3"},
		tagNames:    []string{"Jane Smith", "Alex Kim"},
	},
	{
		title:       "Frontend Developer Referral at Tech Corp",
		content:     "Tech Corp is hiring a frontend developer! Use my referral link to apply. @Jane Smith and @Alex Kim, let me know if you need a referral.",
		category:    "jobs",
		authorName:  "Jane Smith",
		createdAt:   "2024-07-08T09:00:00Z",
		link:        "https://careers.techcorp.com/frontend-referral",
		attachments: []string{"https://example.com/job-description.pdf"},
		likes:       []string{"user1", "user3"},
		tagNames:    []string{"John Doe", "Alex Kim"},
	},
}

// idSeq produces deterministic ObjectIDs so repeated seeding yields the same
// ids.
var idSeq int

func nextID() primitive.ObjectID {
	idSeq++
	id, err := primitive.ObjectIDFromHex(fmt.Sprintf("%024x", idSeq))
	if err != nil {
		log.Fatal("bad seed id: ", err)
	}
	return id
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.DBName)
	users := db.Collection("users")
	posts := db.Collection("posts")
	comments := db.Collection("comments")

	// Remove old data before seeding.
	for _, coll := range []*mongo.Collection{users, posts, comments} {
		if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatal("Failed to wipe collection: ", err)
		}
	}

	// Fixed seed keeps the generated profile fields stable across runs.
	gofakeit.Seed(42)

	// Hash the placeholder password once; every fixture user shares it.
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash seed password: ", err)
	}
	password := string(hash)

	usersByName := map[string]string{}

	ensureUser := func(name string) string {
		key := strings.ToLower(strings.TrimSpace(name))
		if id, ok := usersByName[key]; ok {
			return id
		}

		username := strings.ToLower(strings.ReplaceAll(name, " ", ""))
		fullName := name
		bio := gofakeit.Sentence(8)
		department := gofakeit.RandomString([]string{"CSE", "ECE", "ME", "EEE", "IT"})
		college := gofakeit.Company() + " Institute of Technology"
		joined := time.Now().In(ist).Format(time.RFC3339)

		user := models.User{
			ID:         nextID(),
			Username:   username,
			Email:      username + "@example.com",
			Password:   password,
			FullName:   &fullName,
			Bio:        &bio,
			Department: &department,
			College:    &college,
			Joined:     &joined,
		}
		if _, err := users.InsertOne(ctx, user); err != nil {
			log.Fatal("Failed to insert user: ", err)
		}

		id := user.ID.Hex()
		usersByName[key] = id
		return id
	}

	for _, sp := range fixturePosts {
		authorID := ensureUser(sp.authorName)
		for _, sc := range sp.comments {
			ensureUser(sc.authorName)
		}

		var tags []models.Author
		for _, tagName := range sp.tagNames {
			tags = append(tags, models.Author{ID: ensureUser(tagName), Name: tagName})
		}

		post := models.Post{
			ID:          nextID(),
			Title:       sp.title,
			Content:     sp.content,
			Category:    sp.category,
			Author:      models.Author{ID: authorID, Name: sp.authorName},
			CreatedAt:   sp.createdAt,
			Attachments: sp.attachments,
			Tags:        tags,
			Likes:       sp.likes,
		}
		if sp.link != "" {
			link := sp.link
			post.Link = &link
		}
		if _, err := posts.InsertOne(ctx, post); err != nil {
			log.Fatal("Failed to insert post: ", err)
		}

		postID := post.ID.Hex()
		for _, sc := range sp.comments {
			comment := models.Comment{
				ID:        nextID(),
				Content:   sc.content,
				Author:    models.Author{ID: usersByName[strings.ToLower(sc.authorName)], Name: sc.authorName},
				CreatedAt: sc.createdAt,
				PostID:    postID,
			}
			if _, err := comments.InsertOne(ctx, comment); err != nil {
				log.Fatal("Failed to insert comment: ", err)
			}
		}
	}

	log.Printf("Seeding complete: %d users, %d posts", len(usersByName), len(fixturePosts))
}
