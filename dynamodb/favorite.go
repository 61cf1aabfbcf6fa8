package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cinefav/favorite"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FavoriteRepository persists favorites in a DynamoDB table keyed by
// user_id (partition) and movie_id (sort). The conditional put carries
// the same uniqueness guarantee as the relational unique index.
type FavoriteRepository struct {
	client *dynamodb.Client
	table  string

	// now is a hook for tests
	now func() time.Time
}

type favoriteItem struct {
	UserID        int64     `dynamodbav:"user_id"`
	MovieID       int       `dynamodbav:"movie_id"`
	ID            int64     `dynamodbav:"id"`
	MovieTitle    string    `dynamodbav:"movie_title"`
	OriginalTitle string    `dynamodbav:"original_title"`
	Overview      string    `dynamodbav:"overview"`
	PosterPath    string    `dynamodbav:"poster_path"`
	ReleaseDate   string    `dynamodbav:"release_date"`
	GenreIDs      []int     `dynamodbav:"genre_ids"`
	CreatedAt     time.Time `dynamodbav:"created_at"`
	UpdatedAt     time.Time `dynamodbav:"updated_at"`
}

func NewFavoriteRepository(client *dynamodb.Client, table string) *FavoriteRepository {
	return &FavoriteRepository{
		client: client,
		table:  table,
		now:    time.Now,
	}
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID int64, movieID int) (bool, error) {
	if err := validateTable(r.table); err != nil {
		return false, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            &r.table,
		Key:                  favoriteKey(userID, movieID),
		ProjectionExpression: aws.String("user_id"),
	})
	if err != nil {
		return false, fmt.Errorf("dynamodb: get favorite: %w", err)
	}

	return len(out.Item) > 0, nil
}

func (r *FavoriteRepository) Create(ctx context.Context, f favorite.Favorite) (favorite.Favorite, error) {
	if err := validateTable(r.table); err != nil {
		return favorite.Favorite{}, err
	}

	now := r.now().UTC()
	f.ID = now.UnixNano()
	f.CreatedAt = now
	f.UpdatedAt = now

	av, err := attributevalue.MarshalMap(toFavoriteItem(f))
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("dynamodb: marshal favorite: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(user_id) AND attribute_not_exists(movie_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return favorite.Favorite{}, favorite.ErrAlreadyFavorited
		}
		return favorite.Favorite{}, fmt.Errorf("dynamodb: put favorite: %w", err)
	}

	return f, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, userID int64, movieID int) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.table,
		Key:       favoriteKey(userID, movieID),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: delete favorite: %w", err)
	}

	return nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64, genreID *int) ([]favorite.Favorite, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	userAV, err := attributevalue.Marshal(userID)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: marshal user id: %w", err)
	}

	favorites := []favorite.Favorite{}
	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 &r.table,
		KeyConditionExpression:    aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":uid": userAV},
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: query favorites: %w", err)
		}

		var items []favoriteItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal favorites: %w", err)
		}
		for _, item := range items {
			f := toDomainFavorite(item)
			if genreID != nil && !f.HasGenre(*genreID) {
				continue
			}
			favorites = append(favorites, f)
		}
	}

	// queries come back in movie_id order; callers expect add order
	sort.Slice(favorites, func(i, j int) bool { return favorites[i].ID < favorites[j].ID })

	return favorites, nil
}

func toFavoriteItem(f favorite.Favorite) favoriteItem {
	return favoriteItem{
		UserID:        f.UserID,
		MovieID:       f.MovieID,
		ID:            f.ID,
		MovieTitle:    f.MovieTitle,
		OriginalTitle: f.OriginalTitle,
		Overview:      f.Overview,
		PosterPath:    f.PosterPath,
		ReleaseDate:   f.ReleaseDate,
		GenreIDs:      f.GenreIDs,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func toDomainFavorite(item favoriteItem) favorite.Favorite {
	return favorite.Favorite{
		ID:            item.ID,
		UserID:        item.UserID,
		MovieID:       item.MovieID,
		MovieTitle:    item.MovieTitle,
		OriginalTitle: item.OriginalTitle,
		Overview:      item.Overview,
		PosterPath:    item.PosterPath,
		ReleaseDate:   item.ReleaseDate,
		GenreIDs:      item.GenreIDs,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

func favoriteKey(userID int64, movieID int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", userID)},
		"movie_id": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", movieID)},
	}
}
