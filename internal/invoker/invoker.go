package invoker

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/hillalee/s3-lister/internal/logger"
)

// ErrMissingFunctionName is returned when no function name is given
var ErrMissingFunctionName = errors.New("function name is required")

// LambdaAPI is the subset of the Lambda client used by the invoker
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

var _ LambdaAPI = (*lambda.Client)(nil)

// Result is the outcome of a synchronous invocation
type Result struct {
	StatusCode      int32
	Payload         []byte
	FunctionError   string
	ExecutedVersion string
	LogTail         string
}

type Invoker struct {
	client LambdaAPI
}

func New(client LambdaAPI) *Invoker {
	return &Invoker{client: client}
}

// NewClient builds a Lambda client for region, pointed at endpoint when set
func NewClient(ctx context.Context, region, endpoint string) (*lambda.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return lambda.NewFromConfig(cfg, func(o *lambda.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// Invoke calls functionName synchronously with payload encoded as a JSON
// object and returns the function's response. A function that ran but
// failed yields both the Result and a *FunctionError.
func (i *Invoker) Invoke(ctx context.Context, functionName string, payload map[string]string) (*Result, error) {
	functionName = strings.TrimSpace(functionName)
	if functionName == "" {
		return nil, ErrMissingFunctionName
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	logger.Infof("[Invoker] Invoking %s with %d bytes", functionName, len(body))
	out, err := i.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: lambdatypes.InvocationTypeRequestResponse,
		LogType:        lambdatypes.LogTypeTail,
		Payload:        body,
	})
	if err != nil {
		logger.Errorf("[Invoker] Error invoking %s: %v", functionName, err)
		return nil, fmt.Errorf("invoke %s: %w", functionName, err)
	}

	res := &Result{
		StatusCode:      out.StatusCode,
		Payload:         out.Payload,
		FunctionError:   aws.ToString(out.FunctionError),
		ExecutedVersion: aws.ToString(out.ExecutedVersion),
	}

	if encoded := aws.ToString(out.LogResult); encoded != "" {
		tail, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			logger.Warnf("[Invoker] Could not decode log tail for %s: %v", functionName, err)
		} else {
			res.LogTail = string(tail)
		}
	}

	logger.Debugf("[Invoker] %s returned status=%d version=%s", functionName, res.StatusCode, res.ExecutedVersion)

	if res.FunctionError != "" {
		return res, &FunctionError{
			FunctionName: functionName,
			Kind:         res.FunctionError,
			Payload:      string(res.Payload),
		}
	}

	return res, nil
}
