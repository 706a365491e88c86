package invoker

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLambda struct {
	input *lambda.InvokeInput
	out   *lambda.InvokeOutput
	err   error
}

func (f *fakeLambda) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func TestInvokeRequestResponse(t *testing.T) {
	fake := &fakeLambda{out: &lambda.InvokeOutput{
		StatusCode:      200,
		Payload:         []byte(`{"status":"success","files":["a.jpg"]}`),
		ExecutedVersion: aws.String("$LATEST"),
		LogResult:       aws.String(base64.StdEncoding.EncodeToString([]byte("START RequestId: 1\nEND RequestId: 1\n"))),
	}}

	res, err := New(fake).Invoke(context.Background(), " inventory-notifier ", map[string]string{"source": "manual"})
	require.NoError(t, err)

	assert.Equal(t, "inventory-notifier", aws.ToString(fake.input.FunctionName))
	assert.Equal(t, lambdatypes.InvocationTypeRequestResponse, fake.input.InvocationType)
	assert.Equal(t, lambdatypes.LogTypeTail, fake.input.LogType)
	assert.JSONEq(t, `{"source":"manual"}`, string(fake.input.Payload))

	assert.Equal(t, int32(200), res.StatusCode)
	assert.Equal(t, "$LATEST", res.ExecutedVersion)
	assert.Contains(t, res.LogTail, "END RequestId: 1")
	assert.JSONEq(t, `{"status":"success","files":["a.jpg"]}`, string(res.Payload))
}

func TestInvokeNilPayload(t *testing.T) {
	fake := &fakeLambda{out: &lambda.InvokeOutput{StatusCode: 200}}

	_, err := New(fake).Invoke(context.Background(), "inventory-notifier", nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(fake.input.Payload))
}

func TestInvokeMissingFunctionName(t *testing.T) {
	fake := &fakeLambda{}

	_, err := New(fake).Invoke(context.Background(), "  ", nil)
	assert.ErrorIs(t, err, ErrMissingFunctionName)
	assert.Nil(t, fake.input)
}

func TestInvokeTransportError(t *testing.T) {
	denied := errors.New("AccessDeniedException")

	_, err := New(&fakeLambda{err: denied}).Invoke(context.Background(), "inventory-notifier", nil)
	assert.ErrorIs(t, err, denied)
}

func TestInvokeFunctionError(t *testing.T) {
	fake := &fakeLambda{out: &lambda.InvokeOutput{
		StatusCode:    200,
		FunctionError: aws.String("Unhandled"),
		Payload:       []byte(`{"errorMessage":"publish to topic failed"}`),
	}}

	res, err := New(fake).Invoke(context.Background(), "inventory-notifier", nil)

	var fnErr *FunctionError
	require.True(t, errors.As(err, &fnErr))
	assert.Equal(t, "Unhandled", fnErr.Kind)
	assert.Contains(t, fnErr.Error(), "publish to topic failed")
	require.NotNil(t, res)
	assert.Equal(t, "Unhandled", res.FunctionError)
}

func TestInvokeBadLogTail(t *testing.T) {
	fake := &fakeLambda{out: &lambda.InvokeOutput{StatusCode: 200, LogResult: aws.String("%%%")}}

	res, err := New(fake).Invoke(context.Background(), "inventory-notifier", nil)
	require.NoError(t, err)
	assert.Empty(t, res.LogTail)
}
