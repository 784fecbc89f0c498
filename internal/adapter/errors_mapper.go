package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-build-keeper/models"
	"github.com/go-resty/resty/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var statusKinds = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusUnprocessableEntity: ErrUnprocessable,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrUnavailable,
	http.StatusServiceUnavailable:  ErrUnavailable,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	kind, ok := statusKinds[resp.StatusCode()]
	if !ok {
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}

	remote := &RemoteError{Kind: kind, Message: body}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errResp); err == nil && errResp.Error != "" {
		remote.Message = errResp.Error
		remote.Missing = errResp.Missing
		remote.Unknown = errResp.Unknown
	}

	return remote
}

var codeKinds = map[codes.Code]error{
	codes.InvalidArgument:    ErrBadRequest,
	codes.Unauthenticated:    ErrUnauthorized,
	codes.NotFound:           ErrNotFound,
	codes.FailedPrecondition: ErrUnprocessable,
	codes.Internal:           ErrInternalServerError,
	codes.Unavailable:        ErrUnavailable,
	codes.Unimplemented:      ErrNotSupported,
}

func mapGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	kind, ok := codeKinds[st.Code()]
	if !ok {
		return fmt.Errorf("grpc %s: %s", st.Code(), st.Message())
	}
	return &RemoteError{Kind: kind, Message: st.Message()}
}
