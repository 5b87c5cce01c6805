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

package agent

import (
	"encoding/json"
	"net/http"

	serverconst "github.com/casurance/intake/internal/system/constants"
	"github.com/casurance/intake/internal/system/log"
)

// HandleMeRequest handles GET /api/agent/me. It runs behind Require.
func HandleMeRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AgentHandler"))

	a, ok := FromContext(r.Context())
	if !ok {
		writeError(w, logger, http.StatusUnauthorized, &ErrorUnauthorized)
		return
	}
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SessionResponse{Agent: a, IsAuthenticated: true}); err != nil {
		logger.Error("Error encoding response", log.Error(err))
	}
}
