package clients

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// CognitoClientInterface defines the user pool operations the user
// management service needs
type CognitoClientInterface interface {
	CreateUser(ctx context.Context, email, fullName, role string) (string, error)
	DisableUser(ctx context.Context, email string) error
	EnableUser(ctx context.Context, email string) error
	DeleteUser(ctx context.Context, email string) error
}

// CognitoClient wraps the Cognito identity provider client for one user pool
type CognitoClient struct {
	svc        *cognitoidentityprovider.Client
	userPoolID string
}

// NewCognitoClient creates a new Cognito client for the given user pool
func NewCognitoClient(isLocal bool, userPoolID string) CognitoClientInterface {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("eu-west-2"),
	)
	if err != nil {
		panic("failed to load AWS configuration: " + err.Error())
	}

	if isLocal {
		cfg.BaseEndpoint = aws.String("http://localhost:4566")
	}

	return &CognitoClient{
		svc:        cognitoidentityprovider.NewFromConfig(cfg),
		userPoolID: userPoolID,
	}
}

// CreateUser provisions a Cognito account with a generated temporary
// password and an invitation email, and returns the Cognito sub
func (client *CognitoClient) CreateUser(ctx context.Context, email, fullName, role string) (string, error) {
	output, err := client.svc.AdminCreateUser(ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId: aws.String(client.userPoolID),
		Username:   aws.String(email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
			{Name: aws.String("name"), Value: aws.String(fullName)},
			{Name: aws.String("custom:role"), Value: aws.String(role)},
		},
		DesiredDeliveryMediums: []types.DeliveryMediumType{types.DeliveryMediumTypeEmail},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Cognito user: %w", err)
	}

	for _, attr := range output.User.Attributes {
		if attr.Name != nil && *attr.Name == "sub" && attr.Value != nil {
			return *attr.Value, nil
		}
	}

	return "", fmt.Errorf("Cognito user created without a sub attribute")
}

// DisableUser blocks sign-in for a deactivated account
func (client *CognitoClient) DisableUser(ctx context.Context, email string) error {
	_, err := client.svc.AdminDisableUser(ctx, &cognitoidentityprovider.AdminDisableUserInput{
		UserPoolId: aws.String(client.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		return fmt.Errorf("failed to disable Cognito user: %w", err)
	}
	return nil
}

// EnableUser restores sign-in for a reactivated account
func (client *CognitoClient) EnableUser(ctx context.Context, email string) error {
	_, err := client.svc.AdminEnableUser(ctx, &cognitoidentityprovider.AdminEnableUserInput{
		UserPoolId: aws.String(client.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		return fmt.Errorf("failed to enable Cognito user: %w", err)
	}
	return nil
}

// DeleteUser removes the Cognito account
func (client *CognitoClient) DeleteUser(ctx context.Context, email string) error {
	_, err := client.svc.AdminDeleteUser(ctx, &cognitoidentityprovider.AdminDeleteUserInput{
		UserPoolId: aws.String(client.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		return fmt.Errorf("failed to delete Cognito user: %w", err)
	}
	return nil
}
