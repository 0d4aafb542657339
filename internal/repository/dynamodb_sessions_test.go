package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"antisocial-agent/internal/domain"
)

const testSessionID = "0b6c1f7e-2f0e-4b8a-9d7e-6a1c2b3d4e5f"

type fakeDynamo struct {
	getOut       *dynamodb.GetItemOutput
	getErr       error
	putErr       error
	scanPages    []*dynamodb.ScanOutput
	scanErr      error
	scanCalls    int
	lastGetInput *dynamodb.GetItemInput
	lastPutInput *dynamodb.PutItemInput
	scanInputs   []*dynamodb.ScanInput
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.lastGetInput = in
	return f.getOut, f.getErr
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPutInput = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanInputs = append(f.scanInputs, in)
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	page := f.scanPages[f.scanCalls]
	f.scanCalls++
	return page, nil
}

func sampleSession(id string, created time.Time) domain.Session {
	return domain.Session{
		SessionID: id,
		Platform:  domain.PlatformLinkedIn,
		Topic:     "remote work",
		Audience:  "managers",
		Tone:      "confident",
		Content: domain.ContentPlan{
			TrendingAngles: []string{"a"},
			Hashtags:       []string{"#x"},
			PostBlueprints: []domain.Blueprint{{Hook: "h", Outline: domain.OutlinePoints("p1"), CTA: "c"}},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func mustNewDynamoStore(t *testing.T, db *fakeDynamo) *DynamoSessionStore {
	t.Helper()
	c, err := NewDynamoSessionStore(db, "test-table")
	require.NoError(t, err)
	return c
}

func mustItem(t *testing.T, s domain.Session) map[string]types.AttributeValue {
	t.Helper()
	item, err := sessionItem(s)
	require.NoError(t, err)
	return item
}

func TestDynamoSaveThenGet_RoundTripsThroughItem(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewDynamoStore(t, db)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	sess := sampleSession(testSessionID, fixed.Add(-time.Hour))
	require.NoError(t, c.SaveSession(context.Background(), &sess))
	require.Equal(t, fixed, sess.UpdatedAt)
	require.Equal(t, "SESSION#"+testSessionID, db.lastPutInput.Item["PK"].(*types.AttributeValueMemberS).Value)

	db.getOut = &dynamodb.GetItemOutput{Item: db.lastPutInput.Item}
	got, err := c.GetSession(context.Background(), testSessionID)
	require.NoError(t, err)
	require.Equal(t, sess, got)
	require.True(t, *db.lastGetInput.ConsistentRead)
}

func TestDynamoGetSession_Missing(t *testing.T) {
	c := mustNewDynamoStore(t, &fakeDynamo{getOut: &dynamodb.GetItemOutput{}})
	_, err := c.GetSession(context.Background(), testSessionID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDynamoGetSession_InvalidIDSkipsLookup(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewDynamoStore(t, db)
	_, err := c.GetSession(context.Background(), "../../etc/passwd")
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, db.lastGetInput)
}

func TestDynamoGetSession_Error(t *testing.T) {
	c := mustNewDynamoStore(t, &fakeDynamo{getErr: errors.New("boom")})
	_, err := c.GetSession(context.Background(), testSessionID)
	require.ErrorContains(t, err, "GetSession")
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestDynamoGetSession_MalformedContent(t *testing.T) {
	item := mustItem(t, sampleSession(testSessionID, time.Now()))
	item["content"] = &types.AttributeValueMemberS{Value: "{not json"}
	c := mustNewDynamoStore(t, &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: item}})
	_, err := c.GetSession(context.Background(), testSessionID)
	require.ErrorContains(t, err, "content")
}

func TestDynamoSaveSession_Error(t *testing.T) {
	c := mustNewDynamoStore(t, &fakeDynamo{putErr: errors.New("ProvisionedThroughputExceededException")})
	sess := sampleSession(testSessionID, time.Now())
	err := c.SaveSession(context.Background(), &sess)
	require.ErrorContains(t, err, "SaveSession")
}

func TestDynamoSaveSession_RequiresID(t *testing.T) {
	c := mustNewDynamoStore(t, &fakeDynamo{})
	err := c.SaveSession(context.Background(), &domain.Session{})
	require.ErrorContains(t, err, "required")
}

func TestDynamoListSessions_PaginatesAndSorts(t *testing.T) {
	older := sampleSession(testSessionID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := sampleSession("5f0b8a1e-7c4d-4e2f-8a9b-0c1d2e3f4a5b", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	db := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{
		{
			Items:            []map[string]types.AttributeValue{mustItem(t, older)},
			LastEvaluatedKey: map[string]types.AttributeValue{"PK": &types.AttributeValueMemberS{Value: "x"}},
		},
		{Items: []map[string]types.AttributeValue{mustItem(t, newer)}},
	}}
	c := mustNewDynamoStore(t, db)

	out, err := c.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, newer.SessionID, out[0].SessionID)
	require.Equal(t, older.SessionID, out[1].SessionID)
	require.Len(t, db.scanInputs, 2)
	require.NotNil(t, db.scanInputs[1].ExclusiveStartKey)
	require.Equal(t, "entity = :entity", *db.scanInputs[0].FilterExpression)
}

func TestDynamoListSessions_SkipsUndecodableItems(t *testing.T) {
	good := sampleSession(testSessionID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	bad := mustItem(t, sampleSession("5f0b8a1e-7c4d-4e2f-8a9b-0c1d2e3f4a5b", time.Now()))
	bad["content"] = &types.AttributeValueMemberS{Value: "{not json"}
	db := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{
		{Items: []map[string]types.AttributeValue{bad, mustItem(t, good)}},
	}}
	c := mustNewDynamoStore(t, db)

	out, err := c.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, good.SessionID, out[0].SessionID)
}

func TestDynamoListSessions_ScanError(t *testing.T) {
	c := mustNewDynamoStore(t, &fakeDynamo{scanErr: errors.New("ResourceNotFoundException")})
	_, err := c.ListSessions(context.Background())
	require.ErrorContains(t, err, "ListSessions")
}

func TestItemToSession_MissingAttribute(t *testing.T) {
	item := mustItem(t, sampleSession(testSessionID, time.Now()))
	delete(item, "platform")
	_, err := itemToSession(item)
	require.ErrorContains(t, err, "platform")
}

func TestSessionPK(t *testing.T) {
	require.Equal(t, "SESSION#abc", sessionPK("abc"))
}

func TestNewDynamoSessionStore_Validation(t *testing.T) {
	_, err := NewDynamoSessionStore(nil, "t")
	require.ErrorContains(t, err, "must not be nil")

	_, err = NewDynamoSessionStore(&fakeDynamo{}, " ")
	require.ErrorContains(t, err, "must not be empty")
}
