/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package quote

import (
	"context"
	"net/http"

	"github.com/casurance/intake/internal/submission"
	"github.com/casurance/intake/internal/system/error/serviceerror"
	"github.com/casurance/intake/internal/wizard"
)

// NewSubmitter returns a wizard Submitter that hands records to the quote service in process.
func NewSubmitter(service QuoteServiceInterface) wizard.Submitter {
	return wizard.SubmitterFunc(func(ctx context.Context, req wizard.SubmitRequest) (wizard.SubmitResult, error) {
		if err := ctx.Err(); err != nil {
			return wizard.SubmitResult{}, err
		}
		sub, svcErr := service.SubmitQuote(ctx, req.Product, QuoteRequest{
			Record:      req.Record,
			Attachments: req.Attachments,
		})
		if svcErr != nil {
			statusCode := http.StatusInternalServerError
			if svcErr.Type == serviceerror.ClientErrorType {
				statusCode = http.StatusBadRequest
			}
			return wizard.SubmitResult{}, &wizard.SubmitError{
				StatusCode:  statusCode,
				Message:     svcErr.Error,
				FieldErrors: svcErr.FieldErrors,
			}
		}
		return wizard.SubmitResult{ReferenceNumber: stringOf(sub, submission.KeyReferenceNumber)}, nil
	})
}
