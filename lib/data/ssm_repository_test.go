package data

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func String(v string) *string {
	return &v
}

type MockSSMClient struct {
	TestSuccess bool
}

func InitializeSSMClient(testSuccess bool) SSMRepository {
	mock := &MockSSMClient{
		TestSuccess: testSuccess,
	}

	return &SSMDao{
		SSM:    mock,
		Logger: logrus.New(),
	}
}

func (m *MockSSMClient) GetParametersByPath(ctx context.Context, input *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if m.TestSuccess {
		result := &ssm.GetParametersByPathOutput{
			Parameters: []types.Parameter{
				{
					Name:  String("/ventnav/DATABASE_NAME"),
					Value: String("ventnav"),
				},
				{
					Name:  String("/ventnav/SSL_MODE"),
					Value: String("require"),
				},
			},
			NextToken: nil,
		}
		return result, nil
	}
	return nil, errors.New("error in GetParametersByPath")
}

func Test_GetParameters_Success(t *testing.T) {
	//Arrange
	ssmRepository := InitializeSSMClient(true)

	//Act
	actual, _ := ssmRepository.GetParameters()

	//Assert
	assert.Equal(t, "ventnav", actual["/ventnav/DATABASE_NAME"])
	assert.Equal(t, "require", actual["/ventnav/SSL_MODE"])
}

func Test_GetParameters_Failure(t *testing.T) {
	//Arrange
	ssmRepository := InitializeSSMClient(false)
	expected := "error in GetParametersByPath"

	//Act
	_, actual := ssmRepository.GetParameters()

	//Assert
	assert.Equal(t, expected, actual.Error())
}
