package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// fakeDynamoClient implements DynamoDBAPI with pluggable function fields.
type fakeDynamoClient struct {
	queryFn  func(ctx context.Context, params *dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	getFn    func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	putFn    func(ctx context.Context, params *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	updateFn func(ctx context.Context, params *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	deleteFn func(ctx context.Context, params *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error)
	scanFn   func(ctx context.Context, params *dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
	batchFn  func(ctx context.Context, params *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error)
}

func (f *fakeDynamoClient) Query(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.queryFn != nil {
		return f.queryFn(ctx, params)
	}
	return &dynamodb.QueryOutput{}, nil
}

func (f *fakeDynamoClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getFn != nil {
		return f.getFn(ctx, params)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamoClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putFn != nil {
		return f.putFn(ctx, params)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoClient) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, params)
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamoClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, params)
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamoClient) Scan(ctx context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.scanFn != nil {
		return f.scanFn(ctx, params)
	}
	return &dynamodb.ScanOutput{}, nil
}

func (f *fakeDynamoClient) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	if f.batchFn != nil {
		return f.batchFn(ctx, params)
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}
