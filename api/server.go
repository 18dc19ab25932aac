package api

import (
	"context"
	"fmt"
	"os"

	"github.com/JITENDRA0811/impetus9-backend/api/controllers"
	"github.com/JITENDRA0811/impetus9-backend/api/transport"
	"github.com/JITENDRA0811/impetus9-backend/captcha"
	"github.com/JITENDRA0811/impetus9-backend/logging"
	"github.com/JITENDRA0811/impetus9-backend/storage"
	"github.com/JITENDRA0811/impetus9-backend/uploads"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode, s.config.FrontendOrigin)

	// Create storage
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		panic("failed to load AWS config")
	}

	dynamoClient := dynamodb.NewFromConfig(cfg)

	registrationStorage := &storage.DynamoRegistrationStorage{
		Client:          dynamoClient,
		TableName:       s.config.TableNameRegistrations,
		GuardTableName:  s.config.TableNameGuards,
		DeviceIndexName: s.config.DeviceIndexName,
	}
	lockStorage := &storage.DynamoExportLockStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameExportLocks,
	}

	var verifier captcha.Verifier
	if s.config.CaptchaEnabled {
		verifier = captcha.NewHCaptchaVerifier(s.config.CaptchaSecret)
	} else {
		verifier = captcha.BypassVerifier{}
	}

	uploadStore, err := uploads.NewDiskStore(s.config.UploadDir)
	if err != nil {
		logging.Log.Errorf("failed to create upload dir: %v", err)
		panic("failed to create upload dir")
	}

	rateLimiter := transport.RateLimitMiddleware(s.config.MaxRequests, s.config.Window)

	//Register controllers
	registrationController := controllers.NewRegistrationController(registrationStorage, verifier, uploadStore, s.config.OpenEvents)
	registrationController.RegisterRoutes(r, rateLimiter)
	statusController := controllers.NewStatusController(registrationStorage, s.config.OpenEvents)
	statusController.RegisterRoutes(r, rateLimiter)
	exportController := controllers.NewExportController(registrationStorage, lockStorage, s.config.Passkeys)
	exportController.RegisterRoutes(r)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// startLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// startLocal starts a normal HTTP server
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
