package utils

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ExtractString safely extracts a string from a DynamoDB attribute map
func ExtractString(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

// ExtractBool safely extracts a bool from a DynamoDB attribute map
func ExtractBool(item map[string]types.AttributeValue, field string) bool {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberBOOL); ok {
			return v.Value
		}
	}
	return false
}

// ExtractNumber safely extracts a numeric attribute as its raw string form
func ExtractNumber(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberN); ok {
			return v.Value
		}
	}
	return ""
}
