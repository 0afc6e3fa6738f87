// Package errors provides the structured error type used across the character
// sheet editor.
//
// Errors carry a Code, a user-facing Message, an optional Cause and Meta.
//
//	err := errors.NotFoundf("remote file %s not found", id)
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save character")
//	}
//
// # Document taxonomy
//
// The document pipeline reports four kinds of failure:
//   - MalformedInput (InvalidArgument): the payload is not a usable record;
//     the migrator still returns the default document.
//   - ParseFailure (DataLoss): cached or loaded bytes are not valid JSON.
//   - Remote failures: whatever the remote repository returned, wrapped with
//     Wrap so the original code survives.
//   - Canceled: the user abandoned an interactive flow; never shown as an error.
//
// # gRPC Integration
//
// Handlers convert with ToGRPCError; clients convert back with FromGRPCError.
package errors
