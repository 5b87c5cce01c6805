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

package quoteflow

import dbmodel "github.com/casurance/intake/internal/system/database/model"

var (
	// queryCreateSession inserts a new session.
	queryCreateSession = dbmodel.DBQuery{
		ID: "QFQ-FLOW_SESSION-01",
		Query: "INSERT INTO QUOTE_FLOW_SESSION (FLOW_ID, PRODUCT, STATE, SUBMIT_LOCK, EXPIRES_AT, CREATED_AT, " +
			"UPDATED_AT) VALUES ($1, $2, $3, 0, $4, $5, $5)",
	}

	// queryGetSession loads a session.
	queryGetSession = dbmodel.DBQuery{
		ID:    "QFQ-FLOW_SESSION-02",
		Query: "SELECT FLOW_ID, PRODUCT, STATE, EXPIRES_AT, CREATED_AT FROM QUOTE_FLOW_SESSION WHERE FLOW_ID = $1",
	}

	// queryUpdateSession stores the wizard state and slides the expiry.
	queryUpdateSession = dbmodel.DBQuery{
		ID:    "QFQ-FLOW_SESSION-03",
		Query: "UPDATE QUOTE_FLOW_SESSION SET STATE = $2, EXPIRES_AT = $3, UPDATED_AT = $4 WHERE FLOW_ID = $1",
	}

	// queryDeleteSession removes a session.
	queryDeleteSession = dbmodel.DBQuery{
		ID:    "QFQ-FLOW_SESSION-04",
		Query: "DELETE FROM QUOTE_FLOW_SESSION WHERE FLOW_ID = $1",
	}

	// queryAcquireSubmitLock takes the submit lock when nobody holds it or the holder's lock went stale.
	queryAcquireSubmitLock = dbmodel.DBQuery{
		ID: "QFQ-FLOW_SESSION-05",
		Query: "UPDATE QUOTE_FLOW_SESSION SET SUBMIT_LOCK = 1, SUBMIT_LOCKED_AT = $2 WHERE FLOW_ID = $1 " +
			"AND (SUBMIT_LOCK = 0 OR SUBMIT_LOCKED_AT IS NULL OR SUBMIT_LOCKED_AT < $3)",
	}

	// queryReleaseSubmitLock releases the submit lock.
	queryReleaseSubmitLock = dbmodel.DBQuery{
		ID:    "QFQ-FLOW_SESSION-06",
		Query: "UPDATE QUOTE_FLOW_SESSION SET SUBMIT_LOCK = 0, SUBMIT_LOCKED_AT = NULL WHERE FLOW_ID = $1",
	}

	// queryDeleteExpiredSessions removes sessions that expired before the given time.
	queryDeleteExpiredSessions = dbmodel.DBQuery{
		ID:    "QFQ-FLOW_SESSION-07",
		Query: "DELETE FROM QUOTE_FLOW_SESSION WHERE EXPIRES_AT < $1",
	}
)
