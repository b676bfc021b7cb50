package store

import (
	"context"
	"regexp"

	"campushub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Store on a MongoDB database with the three collections
// users, posts and comments.
type Mongo struct {
	client   *mongo.Client
	db       *mongo.Database
	users    *mongo.Collection
	posts    *mongo.Collection
	comments *mongo.Collection
}

// ConnectMongo opens the client, pings it and hands out collection handles.
func ConnectMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	return &Mongo{
		client:   client,
		db:       db,
		users:    db.Collection("users"),
		posts:    db.Collection("posts"),
		comments: db.Collection("comments"),
	}, nil
}

func (s *Mongo) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Mongo) CollectionNames(ctx context.Context) ([]string, error) {
	return s.db.ListCollectionNames(ctx, bson.M{})
}

// oid parses a hex id; an unparseable id can never match a document, so it
// surfaces as ErrNotFound.
func oid(id string) (primitive.ObjectID, error) {
	v, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return v, nil
}

// ----- users -----

func (s *Mongo) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := s.users.InsertOne(ctx, u)
	return err
}

func (s *Mongo) UserByID(ctx context.Context, id string) (*models.User, error) {
	userID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var user models.User
	err = s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Mongo) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Mongo) UsernameExists(ctx context.Context, username string) (bool, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{"username": username})
	return n > 0, err
}

func (s *Mongo) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	filter := bson.M{"email": email}
	if excludeID != "" {
		userID, err := oid(excludeID)
		if err != nil {
			return false, err
		}
		filter["_id"] = bson.M{"$ne": userID}
	}
	n, err := s.users.CountDocuments(ctx, filter)
	return n > 0, err
}

func (s *Mongo) Users(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Mongo) SearchUsers(ctx context.Context, query string, limit int64) ([]models.User, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"username": re},
		{"full_name": re},
	}}

	cursor, err := s.users.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Mongo) UpdateUser(ctx context.Context, id string, upd *models.UserUpdate) (*models.User, error) {
	userID, err := oid(id)
	if err != nil {
		return nil, err
	}

	set := userSetDoc(upd)
	if len(set) > 0 {
		res, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
	}
	return s.UserByID(ctx, id)
}

func (s *Mongo) SetPassword(ctx context.Context, id, hash string) error {
	userID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) DeleteUser(ctx context.Context, id string) error {
	userID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.users.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func userSetDoc(upd *models.UserUpdate) bson.M {
	set := bson.M{}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.FullName != nil {
		set["full_name"] = *upd.FullName
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.Department != nil {
		set["department"] = *upd.Department
	}
	if upd.Linkedin != nil {
		set["linkedin"] = *upd.Linkedin
	}
	if upd.Github != nil {
		set["github"] = *upd.Github
	}
	if upd.College != nil {
		set["college"] = *upd.College
	}
	if upd.Joined != nil {
		set["joined"] = *upd.Joined
	}
	return set
}

// ----- posts -----

func (s *Mongo) Posts(ctx context.Context) ([]models.Post, error) {
	cursor, err := s.posts.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Mongo) CreatePost(ctx context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.posts.InsertOne(ctx, p)
	return err
}

func (s *Mongo) PostByID(ctx context.Context, id string) (*models.Post, error) {
	postID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var post models.Post
	err = s.posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost writes through a filter that carries the ownership predicate, so
// the check and the mutation are a single atomic call. The extra read below
// only picks the right error when nothing matched.
func (s *Mongo) UpdatePost(ctx context.Context, id, authorID string, upd *models.PostUpdate) (*models.Post, error) {
	postID, err := oid(id)
	if err != nil {
		return nil, err
	}
	owned := bson.M{"_id": postID, "author._id": authorID}

	set := postSetDoc(upd)
	if len(set) > 0 {
		res, err := s.posts.UpdateOne(ctx, owned, bson.M{"$set": set})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, s.writeDenied(ctx, s.posts, postID)
		}
	} else {
		n, err := s.posts.CountDocuments(ctx, owned)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, s.writeDenied(ctx, s.posts, postID)
		}
	}
	return s.PostByID(ctx, id)
}

func (s *Mongo) DeletePost(ctx context.Context, id, authorID string) error {
	postID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": postID, "author._id": authorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return s.writeDenied(ctx, s.posts, postID)
	}
	return nil
}

// writeDenied distinguishes a missing document from one owned by someone else.
func (s *Mongo) writeDenied(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) error {
	n, err := coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrForbidden
}

func (s *Mongo) TogglePostLike(ctx context.Context, id, userID string) ([]string, error) {
	return s.togglePostSet(ctx, id, userID, "likes")
}

func (s *Mongo) TogglePostSave(ctx context.Context, id, userID string) ([]string, error) {
	return s.togglePostSet(ctx, id, userID, "saves")
}

func (s *Mongo) togglePostSet(ctx context.Context, id, userID, field string) ([]string, error) {
	post, err := s.PostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var set []string
	switch field {
	case "likes":
		set = toggle(post.Likes, userID)
	case "saves":
		set = toggle(post.Saves, userID)
	}

	_, err = s.posts.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{"$set": bson.M{field: set}})
	if err != nil {
		return nil, err
	}
	return set, nil
}

func postSetDoc(upd *models.PostUpdate) bson.M {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Link != nil {
		set["link"] = *upd.Link
	}
	if upd.Attachments != nil {
		set["attachments"] = *upd.Attachments
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}
	if upd.CreatedAt != nil {
		set["createdAt"] = *upd.CreatedAt
	}
	if upd.Likes != nil {
		set["likes"] = *upd.Likes
	}
	if upd.Saves != nil {
		set["saves"] = *upd.Saves
	}
	return set
}

// ----- comments -----

func (s *Mongo) CommentsByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.findComments(ctx, bson.M{"post_id": postID})
}

func (s *Mongo) CommentsByUser(ctx context.Context, userID string) ([]models.Comment, error) {
	return s.findComments(ctx, bson.M{"author._id": userID})
}

func (s *Mongo) findComments(ctx context.Context, filter bson.M) ([]models.Comment, error) {
	cursor, err := s.comments.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *Mongo) CreateComment(ctx context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := s.comments.InsertOne(ctx, c)
	return err
}

func (s *Mongo) UpdateComment(ctx context.Context, id, authorID string, upd *models.CommentUpdate) (*models.Comment, error) {
	commentID, err := oid(id)
	if err != nil {
		return nil, err
	}
	owned := bson.M{"_id": commentID, "author._id": authorID}

	set := commentSetDoc(upd)
	if len(set) > 0 {
		res, err := s.comments.UpdateOne(ctx, owned, bson.M{"$set": set})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, s.writeDenied(ctx, s.comments, commentID)
		}
	} else {
		n, err := s.comments.CountDocuments(ctx, owned)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, s.writeDenied(ctx, s.comments, commentID)
		}
	}

	var comment models.Comment
	if err := s.comments.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *Mongo) DeleteComment(ctx context.Context, id, authorID string) error {
	commentID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.comments.DeleteOne(ctx, bson.M{"_id": commentID, "author._id": authorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return s.writeDenied(ctx, s.comments, commentID)
	}
	return nil
}

func (s *Mongo) ToggleCommentLike(ctx context.Context, id, userID string) ([]string, error) {
	commentID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var comment models.Comment
	err = s.comments.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	likes := toggle(comment.Likes, userID)
	_, err = s.comments.UpdateOne(ctx, bson.M{"_id": commentID}, bson.M{"$set": bson.M{"likes": likes}})
	if err != nil {
		return nil, err
	}
	return likes, nil
}

func commentSetDoc(upd *models.CommentUpdate) bson.M {
	set := bson.M{}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}
	if upd.CreatedAt != nil {
		set["createdAt"] = *upd.CreatedAt
	}
	if upd.Likes != nil {
		set["likes"] = *upd.Likes
	}
	if upd.Replies != nil {
		set["replies"] = *upd.Replies
	}
	if upd.PostID != nil {
		set["post_id"] = *upd.PostID
	}
	return set
}

func (s *Mongo) CommentCounts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "post_id", Value: bson.D{{Key: "$in", Value: postIDs}}}}}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$post_id"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	}

	cursor, err := s.comments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		PostID string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

func (s *Mongo) CommentCount(ctx context.Context, postID string) (int64, error) {
	return s.comments.CountDocuments(ctx, bson.M{"post_id": postID})
}
