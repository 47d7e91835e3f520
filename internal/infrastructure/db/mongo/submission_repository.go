package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
)

const submissionsCollection = "submissions"

// SubmissionRepository implements ports.SubmissionRepository on MongoDB.
type SubmissionRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{db: db, coll: db.Collection(submissionsCollection)}
}

type mongoSubmission struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	WorkText   string             `bson:"work_text"`
	ClientName string             `bson:"client_name,omitempty"`
	WorkType   string             `bson:"work_type,omitempty"`
	Quantity   int                `bson:"quantity,omitempty"`
	FilePath   string             `bson:"file_path,omitempty"`
	FileName   string             `bson:"file_name,omitempty"`
	Date       string             `bson:"date"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (ms *mongoSubmission) toDomain() *domain.Submission {
	return &domain.Submission{
		ID:         ms.ID.Hex(),
		UserID:     ms.UserID,
		WorkText:   ms.WorkText,
		ClientName: ms.ClientName,
		WorkType:   ms.WorkType,
		Quantity:   ms.Quantity,
		FilePath:   ms.FilePath,
		FileName:   ms.FileName,
		Date:       ms.Date,
		CreatedAt:  ms.CreatedAt.UTC(),
	}
}

// EnsureIndexes creates the unique (user_id, date) index. That index, not an
// application-level check, is what enforces one report per user per day under
// concurrent submissions.
func (r *SubmissionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSubmission{
		UserID:     s.UserID,
		WorkText:   s.WorkText,
		ClientName: s.ClientName,
		WorkType:   s.WorkType,
		Quantity:   s.Quantity,
		FilePath:   s.FilePath,
		FileName:   s.FileName,
		Date:       s.Date,
		CreatedAt:  s.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSubmission
		}
		return nil, fmt.Errorf("insert submission: %w", err)
	}

	created := *s
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSubmissionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSubmission
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("find submission: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SubmissionRepository) Update(ctx context.Context, s *domain.Submission) error {
	oid, err := primitive.ObjectIDFromHex(s.ID)
	if err != nil {
		return domain.ErrSubmissionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"work_text":   s.WorkText,
		"client_name": s.ClientName,
		"work_type":   s.WorkType,
		"quantity":    s.Quantity,
		"file_path":   s.FilePath,
		"file_name":   s.FileName,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSubmissionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

func (r *SubmissionRepository) ExistsForDate(ctx context.Context, userID, date string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID, "date": date})
	if err != nil {
		return false, fmt.Errorf("count submissions: %w", err)
	}
	return n > 0, nil
}

func (r *SubmissionRepository) RecentForUser(ctx context.Context, userID string, limit int) ([]*domain.Submission, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{"user_id": userID}, opts)
}

func (r *SubmissionRepository) ForUserMonth(ctx context.Context, userID, month string) ([]*domain.Submission, error) {
	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": month + "-01", "$lte": month + "-31"},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *SubmissionRepository) AllForUser(ctx context.Context, userID string) ([]*domain.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"user_id": userID}, opts)
}

func (r *SubmissionRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find submissions: %w", err)
	}

	var docs []mongoSubmission
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}

	subs := make([]*domain.Submission, 0, len(docs))
	for i := range docs {
		subs = append(subs, docs[i].toDomain())
	}
	return subs, nil
}

// ListWithUsers returns filtered submissions joined with their owners, newest
// first. The name filter narrows to the matching users' ids before the
// submission query; the join itself is a batched in-memory lookup.
func (r *SubmissionRepository) ListWithUsers(ctx context.Context, filter ports.ListSubmissionsFilter) ([]*ports.SubmissionWithUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	users := r.db.Collection(usersCollection)

	subFilter := bson.M{}
	if filter.Date != "" {
		subFilter["date"] = filter.Date
	}

	byID := make(map[string]mongoUser)
	if filter.EmployeeName != "" {
		cursor, err := users.Find(ctx, bson.M{"name": nameQuery(filter.EmployeeName)})
		if err != nil {
			return nil, fmt.Errorf("find users: %w", err)
		}
		var docs []mongoUser
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, fmt.Errorf("decode users: %w", err)
		}
		ids := make([]string, 0, len(docs))
		for _, u := range docs {
			byID[u.ID.Hex()] = u
			ids = append(ids, u.ID.Hex())
		}
		if len(ids) == 0 {
			return []*ports.SubmissionWithUser{}, nil
		}
		subFilter["user_id"] = bson.M{"$in": ids}
	}

	cursor, err := r.coll.Find(ctx, subFilter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find submissions: %w", err)
	}
	var subs []mongoSubmission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}

	// Fetch the owners that the name filter did not already load.
	missing := make([]primitive.ObjectID, 0)
	seen := make(map[string]struct{})
	for _, s := range subs {
		if _, ok := byID[s.UserID]; ok {
			continue
		}
		if _, ok := seen[s.UserID]; ok {
			continue
		}
		seen[s.UserID] = struct{}{}
		if oid, err := primitive.ObjectIDFromHex(s.UserID); err == nil {
			missing = append(missing, oid)
		}
	}
	if len(missing) > 0 {
		cursor, err := users.Find(ctx, bson.M{"_id": bson.M{"$in": missing}})
		if err != nil {
			return nil, fmt.Errorf("find owners: %w", err)
		}
		var docs []mongoUser
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, fmt.Errorf("decode owners: %w", err)
		}
		for _, u := range docs {
			byID[u.ID.Hex()] = u
		}
	}

	out := make([]*ports.SubmissionWithUser, 0, len(subs))
	for i := range subs {
		owner, ok := byID[subs[i].UserID]
		if !ok {
			// Owner row vanished between the two queries; skip rather than fail.
			continue
		}
		out = append(out, &ports.SubmissionWithUser{
			Submission:     *subs[i].toDomain(),
			UserName:       owner.Name,
			UserEmail:      owner.Email,
			EmploymentType: owner.EmploymentType,
		})
	}
	return out, nil
}

// nameQuery builds the case-insensitive substring condition for the employee
// name filter. The input is quoted so regex metacharacters match literally
// instead of reaching Mongo's regex engine.
func nameQuery(name string) bson.M {
	return bson.M{
		"$regex":   regexp.QuoteMeta(name),
		"$options": "i",
	}
}

func (r *SubmissionRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *SubmissionRepository) CountForDate(ctx context.Context, date string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{"date": date})
}
