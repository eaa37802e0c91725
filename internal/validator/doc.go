// Package validator collects validation issues for gitlink inputs such as
// manifests and configuration.
//
//   - [Severity]: distinguishes blocking errors from non-blocking warnings.
//   - [Issue]: one problem, optionally tied to a manifest entry and field.
//   - [Result]: aggregates issues; [Result.Err] folds errors into one error.
//
// Usage:
//
//	result := &validator.Result{}
//	if e.Path == "" {
//		result.AddError(i, "path", "is required", nil)
//	}
//	if err := result.Err(errors.ErrInvalidManifest); err != nil {
//		return err
//	}
package validator
