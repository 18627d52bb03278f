package main

import (
	"os"
	"strconv"
	"strings"
	"ventnav/lib/clients"
	"ventnav/lib/constants"
	"ventnav/lib/data"
	"ventnav/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var (
	logger        *logrus.Logger
	isLocal       bool
	ssmRepository data.SSMRepository
	ssmParams     map[string]string
)

// handler answers CORS preflight requests. The origin must match the
// comma-separated allow list held in Parameter Store.
func handler(request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestOrigin, ok := request.Headers["origin"]
	if !ok {
		logger.Warn("Origin header missing from preflight request")
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
		}, nil
	}

	allowedOrigins := strings.Split(ssmParams[constants.ALLOWED_ORIGINS], ",")

	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || allowedOrigin == requestOrigin {
			return events.APIGatewayProxyResponse{
				StatusCode: 200,
				Headers: map[string]string{
					"Access-Control-Allow-Origin":      requestOrigin,
					"Access-Control-Allow-Headers":     "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token,x-retry",
					"Access-Control-Allow-Methods":     "GET, PUT, DELETE, POST, OPTIONS, PATCH",
					"Access-Control-Allow-Credentials": "true",
				},
			}, nil
		}
	}

	logger.WithField("origin", requestOrigin).Warn("Unauthorized origin in preflight request")

	return events.APIGatewayProxyResponse{
		StatusCode: 400,
	}, nil
}

func main() {
	lambda.Start(handler)
}

func init() {
	isLocal, _ = strconv.ParseBool(os.Getenv("IS_LOCAL"))

	logger = logrus.New()
	util.SetLogLevel(logger, os.Getenv("LOG_LEVEL"))
	logger.SetFormatter(&logrus.JSONFormatter{
		PrettyPrint: isLocal,
	})

	// Setup SSM client
	ssmClient := clients.NewSSMClient(isLocal)
	ssmRepository = &data.SSMDao{
		SSM:    ssmClient,
		Logger: logger,
	}

	// Get SSM parameters
	var err error
	ssmParams, err = ssmRepository.GetParameters()
	if err != nil {
		logger.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Fatal("Error while getting ssm params from param store")
	}
}
