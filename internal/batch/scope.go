package batch

import "qactl/internal/client"

// Scope builds the redacted project summary for a batch. A batch must
// never expose more secrets than its tests require:
//
//   - auth_mode none: only identity, name, base URL and the mode itself
//     survive, even when the project record carries stale auth fields.
//   - otherwise: if any selected test names a credential, the summary's
//     credential list is restricted to exactly the named ones, preserving
//     the project's order. A credential name that resolves to nothing is
//     excluded without complaint; the service is responsible for referential
//     integrity and a dangling reference must not break preparation.
//   - if no selected test names a credential, the full list is returned so
//     the executor can pick a default or follow the login instructions.
func Scope(project *client.Project, selected []client.Test) ProjectSummary {
	summary := ProjectSummary{
		ID:       project.ID,
		Name:     project.Name,
		BaseURL:  project.BaseURL,
		AuthMode: project.AuthMode,
	}

	if project.AuthMode == client.AuthModeNone {
		return summary
	}

	summary.LoginURL = project.LoginURL
	summary.RegistrationURL = project.RegistrationURL
	summary.LoginInstructions = project.LoginInstructions

	referenced := make(map[string]struct{})
	for _, t := range selected {
		if t.CredentialName != "" {
			referenced[t.CredentialName] = struct{}{}
		}
	}

	if len(referenced) == 0 {
		summary.Credentials = project.Credentials
		return summary
	}

	scoped := make([]client.Credential, 0, len(referenced))
	for _, cred := range project.Credentials {
		if _, ok := referenced[cred.Name]; ok {
			scoped = append(scoped, cred)
		}
	}
	summary.Credentials = scoped
	return summary
}
