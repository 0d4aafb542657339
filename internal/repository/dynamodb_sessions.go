package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"antisocial-agent/internal/domain"
)

const (
	pkPrefixSession = "SESSION#"
	skMeta          = "META#"
	entitySession   = "session"
)

// dynamodbAPI is the minimal DynamoDB interface required by DynamoSessionStore.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoSessionStore persists sessions as single items in a DynamoDB table
// keyed by PK=SESSION#<id>, SK=META#. The content plan is stored as a JSON
// string attribute.
type DynamoSessionStore struct {
	api       dynamodbAPI
	tableName string
	now       func() time.Time
}

// NewDynamoSessionStore creates a store over tableName.
func NewDynamoSessionStore(api dynamodbAPI, tableName string) (*DynamoSessionStore, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &DynamoSessionStore{api: api, tableName: tableName, now: time.Now}, nil
}

// sessionPK returns the partition key for a session.
func sessionPK(id string) string {
	return pkPrefixSession + id
}

func (c *DynamoSessionStore) GetSession(ctx context.Context, id string) (domain.Session, error) {
	if !validSessionID(id) {
		return domain.Session{}, ErrNotFound
	}
	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: sessionPK(id)},
			"SK": &types.AttributeValueMemberS{Value: skMeta},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("repository: GetSession get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return domain.Session{}, ErrNotFound
	}
	sess, err := itemToSession(out.Item)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repository: GetSession decode: %w", err)
	}
	return sess, nil
}

// SaveSession refreshes sess.UpdatedAt and replaces the stored item.
func (c *DynamoSessionStore) SaveSession(ctx context.Context, sess *domain.Session) error {
	if sess == nil || !validSessionID(sess.SessionID) {
		return errors.New("repository: SaveSession: valid session id is required")
	}
	next := sess.Clone()
	next.Touch(c.now())

	item, err := sessionItem(next)
	if err != nil {
		return fmt.Errorf("repository: SaveSession: %w", err)
	}
	if _, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("repository: SaveSession: %w", err)
	}
	sess.UpdatedAt = next.UpdatedAt
	return nil
}

// ListSessions scans every session item, newest first. Items that cannot be
// decoded are skipped.
func (c *DynamoSessionStore) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	var (
		out       []domain.SessionSummary
		startFrom map[string]types.AttributeValue
	)
	for {
		page, err := c.api.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(c.tableName),
			FilterExpression: aws.String("entity = :entity"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":entity": &types.AttributeValueMemberS{Value: entitySession},
			},
			ExclusiveStartKey: startFrom,
		})
		if err != nil {
			return nil, fmt.Errorf("repository: ListSessions scan: %w", err)
		}
		for _, item := range page.Items {
			sess, err := itemToSession(item)
			if err != nil {
				slog.Warn("skipping unreadable session item", "table", c.tableName, "err", err)
				continue
			}
			out = append(out, sess.Summary())
		}
		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		startFrom = page.LastEvaluatedKey
	}
	sortSummaries(out)
	return out, nil
}

func sessionItem(s domain.Session) (map[string]types.AttributeValue, error) {
	content, err := json.Marshal(s.Content)
	if err != nil {
		return nil, fmt.Errorf("marshal content: %w", err)
	}
	return map[string]types.AttributeValue{
		"PK":        &types.AttributeValueMemberS{Value: sessionPK(s.SessionID)},
		"SK":        &types.AttributeValueMemberS{Value: skMeta},
		"entity":    &types.AttributeValueMemberS{Value: entitySession},
		"sessionId": &types.AttributeValueMemberS{Value: s.SessionID},
		"platform":  &types.AttributeValueMemberS{Value: s.Platform},
		"topic":     &types.AttributeValueMemberS{Value: s.Topic},
		"audience":  &types.AttributeValueMemberS{Value: s.Audience},
		"tone":      &types.AttributeValueMemberS{Value: s.Tone},
		"content":   &types.AttributeValueMemberS{Value: string(content)},
		"createdAt": &types.AttributeValueMemberS{Value: s.CreatedAt.UTC().Format(time.RFC3339Nano)},
		"updatedAt": &types.AttributeValueMemberS{Value: s.UpdatedAt.UTC().Format(time.RFC3339Nano)},
	}, nil
}

// itemToSession converts a DynamoDB attribute map to a Session.
func itemToSession(item map[string]types.AttributeValue) (domain.Session, error) {
	id, err := strAttr(item, "sessionId")
	if err != nil {
		return domain.Session{}, err
	}
	platform, err := strAttr(item, "platform")
	if err != nil {
		return domain.Session{}, err
	}
	rawContent, err := strAttr(item, "content")
	if err != nil {
		return domain.Session{}, err
	}
	createdAt, err := timeAttr(item, "createdAt")
	if err != nil {
		return domain.Session{}, err
	}
	updatedAt, err := timeAttr(item, "updatedAt")
	if err != nil {
		return domain.Session{}, err
	}
	topic, _ := strAttr(item, "topic") // allow empty
	audience, _ := strAttr(item, "audience")
	tone, _ := strAttr(item, "tone")

	var content domain.ContentPlan
	if err := json.Unmarshal([]byte(rawContent), &content); err != nil {
		return domain.Session{}, fmt.Errorf("repository: attribute %q: %w", "content", err)
	}

	return domain.Session{
		SessionID: id,
		Platform:  platform,
		Topic:     topic,
		Audience:  audience,
		Tone:      tone,
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func timeAttr(item map[string]types.AttributeValue, key string) (time.Time, error) {
	s, err := strAttr(item, key)
	if err != nil {
		return time.Time{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return ts, nil
}
