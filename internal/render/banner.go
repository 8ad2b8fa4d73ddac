package render

import (
	"errors"
	"fmt"

	"github.com/forumhq/forumctl/internal/model"
)

// Banner translates an error into the one-line message shown to the user.
// Each failure kind keeps its distinct wording so an expired session, a
// missing page and an unreachable server never look alike.
func Banner(err error) string {
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch apiErr.Kind {
	case model.KindAuthentication:
		return "Your session has expired. Please sign in again."
	case model.KindAuthorization:
		return "You do not have permission to do that."
	case model.KindNotFound:
		return "Not found. The page may have been deleted."
	case model.KindNetwork:
		return "Could not reach the server. Check your connection and try again."
	case model.KindConflict, model.KindValidation:
		return apiErr.Detail
	case model.KindUpload:
		return fmt.Sprintf("Upload failed: %s", apiErr.Detail)
	case model.KindMalformed:
		return "The server sent an unexpected response. Please try again."
	default:
		return "Something went wrong on the server. Please try again later."
	}
}
